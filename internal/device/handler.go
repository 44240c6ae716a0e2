package device

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"pdks-backend/internal/attendance"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	CompanyName  string `json:"companyName"`
	TabletNumber string `json:"tabletNumber"`
	Password     string `json:"password"`
}

type AttendanceRequest struct {
	EmployeeID uint   `json:"employeeId"`
	Action     string `json:"action"`
}

type EquipmentRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type EmployeeResponse struct {
	ID        uint   `json:"id"`
	CompanyID uint   `json:"companyId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func newAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// -------------------------------------------------
// POST /api/devices/register
// Idempotent: cihaz yoksa yeni api key ile oluşturulur; varsa şifre
// doğrulanır ve mevcut key geri döner.
// -------------------------------------------------
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.CompanyName = strings.TrimSpace(body.CompanyName)
		body.TabletNumber = strings.TrimSpace(body.TabletNumber)
		if body.CompanyName == "" || body.TabletNumber == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "companyName, tabletNumber ve password zorunlu")
		}

		var company models.Company
		if err := database.DB.Where("name = ?", body.CompanyName).First(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}

		var dev models.Device
		err := database.DB.Where("company_id = ? AND tablet_number = ?", company.ID, body.TabletNumber).
			First(&dev).Error
		if err != nil {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			apiKey, keyErr := newAPIKey()
			if keyErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Api key üretilemedi")
			}

			dev = models.Device{
				CompanyID:    company.ID,
				TabletNumber: body.TabletNumber,
				PasswordHash: string(hash),
				ApiKey:       apiKey,
			}
			if err := database.DB.Create(&dev).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Cihaz oluşturulamadı")
			}

			log.Printf("NEW DEVICE -> company:%s tablet:%s apiKey:%s...", company.Name, dev.TabletNumber, dev.ApiKey[:8])
			return c.JSON(fiber.Map{"apiKey": dev.ApiKey, "companyId": company.ID})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(dev.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Şifre hatalı")
		}

		log.Printf("DEVICE LOGIN -> company:%s tablet:%s", company.Name, dev.TabletNumber)
		return c.JSON(fiber.Map{"apiKey": dev.ApiKey, "companyId": company.ID})
	}
}

// -------------------------------------------------
// GET /api/device/employees
// Cihaz tek şirkete bağlı olduğu için erişim örtüktür, resolver gerekmez.
// -------------------------------------------------
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dev, err := FromCtx(c)
		if err != nil {
			return err
		}

		var employees []models.Employee
		if err := database.DB.
			Where("company_id = ? AND is_active = ?", dev.CompanyID, true).
			Order("last_name ASC, first_name ASC").
			Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışanlar listelenemedi")
		}

		res := make([]EmployeeResponse, 0, len(employees))
		for _, e := range employees {
			res = append(res, EmployeeResponse{
				ID:        e.ID,
				CompanyID: e.CompanyID,
				FirstName: e.FirstName,
				LastName:  e.LastName,
			})
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// POST /api/device/attendance
// -------------------------------------------------
func CreateAttendanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dev, err := FromCtx(c)
		if err != nil {
			return err
		}

		var body AttendanceRequest
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

		var emp models.Employee
		if err := database.DB.Where("id = ? AND company_id = ?", body.EmployeeID, dev.CompanyID).
			First(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bu şirkette bulunamadı")
		}

		logRow := models.AttendanceLog{
			CompanyID:  dev.CompanyID,
			EmployeeID: body.EmployeeID,
			Action:     action,
			Timestamp:  time.Now(),
			RecordedBy: "tablet-" + dev.TabletNumber,
		}
		if err := database.DB.Create(&logRow).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Log kaydedilemedi")
		}
		logRow.Employee = emp

		return c.Status(fiber.StatusCreated).JSON(attendance.NewLogResponse(&logRow))
	}
}

// -------------------------------------------------
// POST /api/device/equipment
// Tabletten ekipman ölçümü (ör. dolap sıcaklığı) kaydı.
// -------------------------------------------------
func CreateEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dev, err := FromCtx(c)
		if err != nil {
			return err
		}

		var body EquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Key = strings.TrimSpace(body.Key)
		if body.Key == "" || body.Value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "key ve value zorunlu")
		}

		deviceID := dev.ID
		logRow := models.EquipmentLog{
			CompanyID:  dev.CompanyID,
			DeviceID:   &deviceID,
			Key:        body.Key,
			Value:      body.Value,
			Unit:       body.Unit,
			RecordedBy: "tablet-" + dev.TabletNumber,
		}
		if err := database.DB.Create(&logRow).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ekipman logu kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":         logRow.ID,
			"companyId":  logRow.CompanyID,
			"deviceId":   logRow.DeviceID,
			"key":        logRow.Key,
			"value":      logRow.Value,
			"unit":       logRow.Unit,
			"recordedBy": logRow.RecordedBy,
			"createdAt":  logRow.CreatedAt,
		})
	}
}
