package equipment

import (
	"strconv"
	"time"

	"pdks-backend/internal/attendance"
	"pdks-backend/internal/auth"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
	"pdks-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
)

type LogResponse struct {
	ID         uint   `json:"id"`
	CompanyID  uint   `json:"companyId"`
	DeviceID   *uint  `json:"deviceId"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	Unit       string `json:"unit"`
	RecordedBy string `json:"recordedBy"`
	CreatedAt  string `json:"createdAt"`
}

// -------------------------------------------------
// GET /api/companies/:companyId/equipment-logs
// -------------------------------------------------
func ListCompanyLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID64, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id")
		}
		companyID := uint(companyID64)

		userID, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		allowed, err := tenant.HasAccess(userID, role, companyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erişim kontrolü yapılamadı")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Bu şirkete erişim yetkiniz yok")
		}

		limit := c.QueryInt("limit", 200)
		skip := c.QueryInt("skip", 0)

		q := database.DB.Where("company_id = ?", companyID)
		if gte := attendance.ParseDateParam(c.Query("from"), false); gte != nil {
			q = q.Where("created_at >= ?", *gte)
		}
		if lte := attendance.ParseDateParam(c.Query("to"), true); lte != nil {
			q = q.Where("created_at <= ?", *lte)
		}

		var logs []models.EquipmentLog
		if err := q.Order("created_at DESC").
			Limit(limit).Offset(skip).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ekipman logları listelenemedi")
		}

		res := make([]LogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, LogResponse{
				ID:         l.ID,
				CompanyID:  l.CompanyID,
				DeviceID:   l.DeviceID,
				Key:        l.Key,
				Value:      l.Value,
				Unit:       l.Unit,
				RecordedBy: l.RecordedBy,
				CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return c.JSON(res)
	}
}
