package attendance

import (
	"strconv"
	"strings"
	"time"

	"pdks-backend/internal/auth"
	"pdks-backend/internal/config"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
	"pdks-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EmployeeRef struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Tek kanonik zaman alanı "timestamp"; panelin eski çoklu alan denemesi
// için ayrıca alan yayınlamıyoruz.
type LogResponse struct {
	ID         uint         `json:"id"`
	CompanyID  uint         `json:"companyId"`
	EmployeeID uint         `json:"employeeId"`
	Employee   *EmployeeRef `json:"employee,omitempty"`
	Action     string       `json:"action"`
	Timestamp  string       `json:"timestamp"`
	RecordedBy string       `json:"recordedBy"`
}

func NewLogResponse(l *models.AttendanceLog) LogResponse {
	res := LogResponse{
		ID:         l.ID,
		CompanyID:  l.CompanyID,
		EmployeeID: l.EmployeeID,
		Action:     string(l.Action),
		Timestamp:  l.Timestamp.UTC().Format(csvTimestampLayout),
		RecordedBy: l.RecordedBy,
	}
	if l.Employee.ID != 0 {
		res.Employee = &EmployeeRef{
			ID:        l.Employee.ID,
			FirstName: l.Employee.FirstName,
			LastName:  l.Employee.LastName,
		}
	}
	return res
}

type CreateAttendanceRequest struct {
	EmployeeID uint   `json:"employeeId"`
	Action     string `json:"action"`
	RecordedBy string `json:"recordedBy"`
}

func parseCompanyIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("companyId"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id")
	}
	return uint(id), nil
}

// Tarih/çalışan filtrelerini sorguya uygular.
func applyLogFilters(q *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if gte := ParseDateParam(c.Query("from"), false); gte != nil {
		q = q.Where("timestamp >= ?", *gte)
	}
	if lte := ParseDateParam(c.Query("to"), true); lte != nil {
		q = q.Where("timestamp <= ?", *lte)
	}
	if employeeID := c.Query("employeeId"); employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	return q
}

// -------------------------------------------------
// GET /api/companies/:companyId/logs
// -------------------------------------------------
func ListCompanyLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyIDParam(c)
		if err != nil {
			return err
		}

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

		var logs []models.AttendanceLog
		q := applyLogFilters(database.DB.Where("company_id = ?", companyID), c)
		if err := q.Preload("Employee").
			Order("timestamp DESC").
			Limit(limit).Offset(skip).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		res := make([]LogResponse, 0, len(logs))
		for i := range logs {
			res = append(res, NewLogResponse(&logs[i]))
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// GET /api/companies/:companyId/logs.csv
// -------------------------------------------------
func ExportCompanyLogsCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyIDParam(c)
		if err != nil {
			return err
		}

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

		sep := c.Query("sep", DefaultCSVSeparator)
		addBOM := c.Query("bom") != "0"

		var rows []models.AttendanceLog
		q := applyLogFilters(database.DB.Where("company_id = ?", companyID), c)
		if err := q.Preload("Employee").
			Order("timestamp DESC").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar okunamadı")
		}

		csv := RowsToCSV(rows, sep, addBOM)

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="logs_`+strconv.FormatUint(uint64(companyID), 10)+`.csv"`)
		return c.SendString(csv)
	}
}

// -------------------------------------------------
// GET /api/admin/attendance-logs
// Erişilebilir tüm şirketlerin logları; küme boşsa [] döner, hata değil.
// -------------------------------------------------
func ListAdminLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		allowed, err := tenant.AllowedCompanyIDs(userID, role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket erişimleri okunamadı")
		}
		if len(allowed) == 0 {
			return c.JSON([]LogResponse{})
		}

		limit := c.QueryInt("limit", 500)
		skip := c.QueryInt("skip", 0)

		var logs []models.AttendanceLog
		q := applyLogFilters(database.DB.Where("company_id IN ?", allowed), c)
		if err := q.Preload("Employee").
			Order("timestamp DESC").
			Limit(limit).Offset(skip).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		res := make([]LogResponse, 0, len(logs))
		for i := range logs {
			res = append(res, NewLogResponse(&logs[i]))
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// POST /api/companies/:companyId/attendance
// Eskiden tamamen açıktı; artık ya bearer token (şirket erişimi şart) ya da
// aynı şirkete bağlı bir cihazın x-api-key'i gerekiyor.
// -------------------------------------------------
func CreateManualAttendanceHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyIDParam(c)
		if err != nil {
			return err
		}

		recordedBy := ""

		if apiKey := c.Get("x-api-key"); apiKey != "" {
			var dev models.Device
			if err := database.DB.Where("api_key = ?", apiKey).First(&dev).Error; err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz api key")
			}
			if dev.CompanyID != companyID {
				return fiber.NewError(fiber.StatusForbidden, "Cihaz bu şirkete bağlı değil")
			}
			recordedBy = "tablet-" + dev.TabletNumber
		} else {
			authHeader := c.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return fiber.NewError(fiber.StatusUnauthorized, "Token veya x-api-key gerekli")
			}
			claims, err := auth.ParseToken(cfg.JWTSecret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			allowed, err := tenant.HasAccess(claims.UserID, claims.Role, companyID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Erişim kontrolü yapılamadı")
			}
			if !allowed {
				return fiber.NewError(fiber.StatusForbidden, "Bu şirkete erişim yetkiniz yok")
			}
		}

		var body CreateAttendanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.EmployeeID == 0 || body.Action == "" {
			return fiber.NewError(fiber.StatusBadRequest, "employeeId ve action zorunlu")
		}

		action := models.AttendanceAction(body.Action)
		if action != models.AttendanceIn && action != models.AttendanceOut {
			return fiber.NewError(fiber.StatusBadRequest, "action IN veya OUT olmalı")
		}

		// Şirketler arası referans yasak: çalışan bu şirkette olmalı
		var emp models.Employee
		if err := database.DB.Where("id = ? AND company_id = ?", body.EmployeeID, companyID).
			First(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bu şirkette bulunamadı")
		}

		if recordedBy == "" {
			recordedBy = body.RecordedBy
		}
		if recordedBy == "" {
			recordedBy = "tablet"
		}

		logRow := models.AttendanceLog{
			CompanyID:  companyID,
			EmployeeID: body.EmployeeID,
			Action:     action,
			Timestamp:  time.Now(),
			RecordedBy: recordedBy,
		}
		if err := database.DB.Create(&logRow).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Log kaydedilemedi")
		}
		logRow.Employee = emp

		return c.Status(fiber.StatusCreated).JSON(NewLogResponse(&logRow))
	}
}
