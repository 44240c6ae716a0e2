package auth

import (
	"strings"

	"pdks-backend/internal/config"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
	"pdks-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"` // boşsa SUPER_ADMIN
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler: ilk kullanıcı (bootstrap) serbesttir; sistemde kullanıcı
// varsa yalnızca geçerli bir SUPER_ADMIN token'ı ile kayıt açılabilir.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.FullName = strings.TrimSpace(body.FullName)

		if body.FullName == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		if body.Role == "" {
			body.Role = models.RoleSuperAdmin
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
		}

		var usersCount int64
		if err := database.DB.Model(&models.User{}).Count(&usersCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı sayısı okunamadı")
		}

		if usersCount > 0 {
			authHeader := c.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
			}
			claims, err := ParseToken(cfg.JWTSecret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil || claims.Role != models.RoleSuperAdmin {
				return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
			}
		}

		var exists models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exists).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			FullName:     body.FullName,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"fullName": user.FullName,
				"email":    user.Email,
				"role":     user.Role,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bulunamadı")
		}

		// Panel, menüyü kurarken erişilebilir şirketleri de istiyor
		companyIDs, err := tenant.AllowedCompanyIDs(userID, role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket erişimleri okunamadı")
		}

		return c.JSON(fiber.Map{
			"id":         user.ID,
			"fullName":   user.FullName,
			"email":      user.Email,
			"role":       user.Role,
			"companyIds": companyIDs,
		})
	}
}
