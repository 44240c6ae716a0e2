package admin

import (
	"log"
	"strconv"

	"pdks-backend/internal/audit"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
	"pdks-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
)

type DeviceOwnerResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type DeviceResponse struct {
	ID           uint                 `json:"id"`
	CompanyID    uint                 `json:"companyId"`
	TabletNumber string               `json:"tabletNumber"`
	LastSeen     *string              `json:"lastSeen"`
	OwnerUserID  *uint                `json:"ownerUserId"`
	OwnerUser    *DeviceOwnerResponse `json:"ownerUser"`
}

type AssignDeviceOwnerRequest struct {
	UserID uint `json:"userId"`
}

func newDeviceResponse(d *models.Device) DeviceResponse {
	res := DeviceResponse{
		ID:           d.ID,
		CompanyID:    d.CompanyID,
		TabletNumber: d.TabletNumber,
		OwnerUserID:  d.OwnerUserID,
	}
	if d.LastSeen != nil {
		formatted := d.LastSeen.Format("2006-01-02 15:04:05")
		res.LastSeen = &formatted
	}
	if d.OwnerUser != nil {
		res.OwnerUser = &DeviceOwnerResponse{ID: d.OwnerUser.ID, Email: d.OwnerUser.Email}
	}
	return res
}

// ----------------------------------------
// CİHAZ YÖNETİMİ
// ----------------------------------------

// GET /api/admin/my-devices
// Panel tablosu için sadeleştirilmiş liste; küme boşsa [].
func MyDevicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, role, err := getUserInfo(c)
		if err != nil {
			return err
		}

		allowed, err := tenant.AllowedCompanyIDs(userID, role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket erişimleri okunamadı")
		}
		if len(allowed) == 0 {
			return c.JSON([]DeviceResponse{})
		}

		var devices []models.Device
		if err := database.DB.
			Where("company_id IN ?", allowed).
			Order("tablet_number ASC").
			Preload("OwnerUser").
			Find(&devices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cihazlar listelenemedi")
		}

		res := make([]DeviceResponse, 0, len(devices))
		for i := range devices {
			res = append(res, newDeviceResponse(&devices[i]))
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/devices/:id/owner
// Ekipman sayfası cihaz sahibinden şirket çözdüğü için sahip ataması gerekiyor.
func AssignDeviceOwnerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, role, err := getUserInfo(c)
		if err != nil {
			return err
		}

		deviceID64, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cihaz id")
		}

		var dev models.Device
		if err := database.DB.First(&dev, "id = ?", uint(deviceID64)).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cihaz bulunamadı")
		}
		before := dev

		allowed, err := tenant.HasAccess(userID, role, dev.CompanyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erişim kontrolü yapılamadı")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Bu şirkete erişim yetkiniz yok")
		}

		var body AssignDeviceOwnerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}
		if body.UserID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "userId zorunlu")
		}

		var owner models.User
		if err := database.DB.First(&owner, "id = ?", body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		dev.OwnerUserID = &owner.ID
		if err := database.DB.Save(&dev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cihaz güncellenemedi")
		}
		dev.OwnerUser = &owner

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &dev.CompanyID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "device",
			EntityID:    dev.ID,
			Action:      models.AuditActionUpdate,
			Description: "Cihaz sahibi atandı: " + dev.TabletNumber + " -> " + owner.Email,
			Before:      before,
			After:       dev,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.JSON(newDeviceResponse(&dev))
	}
}
