package audit

import (
	"fmt"

	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	CompanyID   *uint              `json:"company_id"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/admin/audit-logs?entity_type=employee&entity_id=1&company_id=1
// Route SUPER_ADMIN arkasında; filtreler opsiyonel.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if cidStr := c.Query("company_id"); cidStr != "" {
			var cid uint
			if _, err := fmt.Sscan(cidStr, &cid); err == nil && cid > 0 {
				dbq = dbq.Where("company_id = ?", cid)
			}
		}
		if uidStr := c.Query("user_id"); uidStr != "" {
			var uid uint
			if _, err := fmt.Sscan(uidStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}
		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if eidStr := c.Query("entity_id"); eidStr != "" {
			var eid uint
			if _, err := fmt.Sscan(eidStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}

		limit := c.QueryInt("limit", 200)

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, logRow := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          logRow.ID,
				CreatedAt:   logRow.CreatedAt.Format("2006-01-02 15:04:05"),
				CompanyID:   logRow.CompanyID,
				UserID:      logRow.UserID,
				UserName:    logRow.UserName,
				EntityType:  logRow.EntityType,
				EntityID:    logRow.EntityID,
				Action:      logRow.Action,
				Description: logRow.Description,
			})
		}

		return c.JSON(resp)
	}
}
