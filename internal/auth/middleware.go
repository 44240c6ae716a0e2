package auth

import (
	"strings"

	"pdks-backend/internal/config"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey    = "user_id"
	CtxUserEmailKey = "user_email"
	CtxUserRoleKey  = "user_role"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserEmailKey, claims.Email)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}

// CurrentUser, JWTMiddleware'in Locals'a koyduğu kimliği okur.
func CurrentUser(c *fiber.Ctx) (uint, models.UserRole, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
	}
	role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Rol bilgisi alınamadı")
	}
	return userID, role, nil
}
