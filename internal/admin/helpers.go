package admin

import (
	"pdks-backend/internal/auth"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Audit kaydı için kullanıcı adı da gerekiyor, o yüzden DB'den çekiyoruz.
func getUserInfo(c *fiber.Ctx) (uint, string, models.UserRole, error) {
	userID, role, err := auth.CurrentUser(c)
	if err != nil {
		return 0, "", "", err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.FullName, role, nil
}
