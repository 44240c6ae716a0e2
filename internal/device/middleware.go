package device

import (
	"log"
	"time"

	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const CtxDeviceKey = "device"

// AuthMiddleware x-api-key başlığı ile cihazı doğrular ve şirketiyle
// birlikte Locals'a koyar.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get("x-api-key")
		if apiKey == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "x-api-key başlığı eksik")
		}

		var dev models.Device
		if err := database.DB.Preload("Company").
			Where("api_key = ?", apiKey).
			First(&dev).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz api key")
		}

		c.Locals(CtxDeviceKey, &dev)

		// Son görülme best-effort güncellenir; başarısızlığı isteği etkilemez
		go func(id uint) {
			now := time.Now()
			if err := database.DB.Model(&models.Device{}).
				Where("id = ?", id).
				Update("last_seen", now).Error; err != nil {
				log.Printf("last_seen güncellenemedi (device %d): %v", id, err)
			}
		}(dev.ID)

		return c.Next()
	}
}

// FromCtx, AuthMiddleware'in koyduğu cihazı okur.
func FromCtx(c *fiber.Ctx) (*models.Device, error) {
	dev, ok := c.Locals(CtxDeviceKey).(*models.Device)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Cihaz bilgisi alınamadı")
	}
	return dev, nil
}
