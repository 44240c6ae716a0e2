package admin

import (
	"log"

	"pdks-backend/internal/audit"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AttachCompanyAdminRequest struct {
	UserID    uint `json:"userId"`
	CompanyID uint `json:"companyId"`
}

type UserResponse struct {
	ID        uint            `json:"id"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt string          `json:"created_at"`
}

// ----------------------------------------
// KULLANICI YÖNETİMİ (SUPER_ADMIN)
// ----------------------------------------

// POST /api/admin/attach-company-admin
// Kullanıcıyı COMPANY_ADMIN yapar ve CompanyUser kaydını (yoksa) oluşturur.
func AttachCompanyAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, adminName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body AttachCompanyAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.UserID == 0 || body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "userId ve companyId zorunlu")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}

		if err := database.DB.Model(&user).Update("role", models.RoleCompanyAdmin).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rol güncellenemedi")
		}

		// (user, company) çifti tekil; varsa dokunma
		cu := models.CompanyUser{UserID: user.ID, CompanyID: company.ID}
		if err := database.DB.
			Where("user_id = ? AND company_id = ?", user.ID, company.ID).
			FirstOrCreate(&cu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket yetkisi oluşturulamadı")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &company.ID,
			UserID:      adminID,
			UserName:    adminName,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: "Şirket admini atandı: " + user.Email + " -> " + company.Name,
			After:       cu,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}

// GET /api/admin/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, UserResponse{
				ID:        u.ID,
				FullName:  u.FullName,
				Email:     u.Email,
				Role:      u.Role,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
