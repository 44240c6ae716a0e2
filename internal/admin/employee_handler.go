package admin

import (
	"log"
	"strconv"
	"strings"

	"pdks-backend/internal/audit"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
	"pdks-backend/internal/tenant"

	"github.com/gofiber/fiber/v2"
)

type CreateEmployeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateEmployeeRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsActive  *bool   `json:"isActive"`
}

type EmployeeResponse struct {
	ID        uint   `json:"id"`
	CompanyID uint   `json:"companyId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
}

func newEmployeeResponse(e *models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		IsActive:  e.IsActive,
	}
}

// ----------------------------------------
// ÇALIŞAN YÖNETİMİ
// COMPANY_ADMIN kendi şirketleri için, SUPER_ADMIN hepsi için.
// ----------------------------------------

// POST /api/admin/companies/:id/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, role, err := getUserInfo(c)
		if err != nil {
			return err
		}

		companyID64, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz şirket id")
		}
		companyID := uint(companyID64)

		allowed, err := tenant.HasAccess(userID, role, companyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erişim kontrolü yapılamadı")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Bu şirkete erişim yetkiniz yok")
		}

		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		if body.FirstName == "" || body.LastName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim ve soyisim zorunlu")
		}

		emp := models.Employee{
			CompanyID: companyID,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			IsActive:  true,
		}
		if err := database.DB.Create(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan oluşturulamadı")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &companyID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionCreate,
			Description: "Çalışan eklendi: " + emp.FirstName + " " + emp.LastName,
			After:       emp,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.Status(fiber.StatusCreated).JSON(newEmployeeResponse(&emp))
	}
}

// PUT /api/admin/employees/:id
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, role, err := getUserInfo(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}
		before := emp

		allowed, err := tenant.HasAccess(userID, role, emp.CompanyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erişim kontrolü yapılamadı")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Bu şirkete erişim yetkiniz yok")
		}

		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.FirstName != nil {
			name := strings.TrimSpace(*body.FirstName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			emp.FirstName = name
		}
		if body.LastName != nil {
			name := strings.TrimSpace(*body.LastName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Soyisim boş olamaz")
			}
			emp.LastName = name
		}
		if body.IsActive != nil {
			emp.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan güncellenemedi")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &emp.CompanyID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionUpdate,
			Description: "Çalışan güncellendi: " + emp.FirstName + " " + emp.LastName,
			Before:      before,
			After:       emp,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.JSON(newEmployeeResponse(&emp))
	}
}

// DELETE /api/admin/employees/:id
// Devam logları isme çözülmeye devam etmeli; o yüzden silmek yerine
// pasife çekiyoruz.
func DeactivateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, role, err := getUserInfo(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		allowed, err := tenant.HasAccess(userID, role, emp.CompanyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erişim kontrolü yapılamadı")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Bu şirkete erişim yetkiniz yok")
		}

		before := emp
		emp.IsActive = false
		if err := database.DB.Save(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan pasife çekilemedi")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &emp.CompanyID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "employee",
			EntityID:    emp.ID,
			Action:      models.AuditActionDelete,
			Description: "Çalışan pasife çekildi: " + emp.FirstName + " " + emp.LastName,
			Before:      before,
			After:       emp,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/admin/my-employees
// Erişilebilir tüm şirketlerin aktif çalışanları; küme boşsa [].
func MyEmployeesHandler() fiber.Handler {
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
			return c.JSON([]EmployeeResponse{})
		}

		var employees []models.Employee
		if err := database.DB.
			Where("company_id IN ? AND is_active = ?", allowed, true).
			Order("last_name ASC, first_name ASC").
			Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışanlar listelenemedi")
		}

		res := make([]EmployeeResponse, 0, len(employees))
		for i := range employees {
			res = append(res, newEmployeeResponse(&employees[i]))
		}
		return c.JSON(res)
	}
}
