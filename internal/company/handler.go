package company

import (
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CompanyResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type EmployeeResponse struct {
	ID        uint   `json:"id"`
	CompanyID uint   `json:"companyId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
}

// -------------------------------------------------
// GET /api/companies
// Login öncesi şirket seçimi ve cihaz kaydı isimle yapıldığı için bu liste
// açık metadata olarak kalıyor; yalnızca id + isim dönüyoruz.
// -------------------------------------------------
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var companies []models.Company
		if err := database.DB.Order("name ASC").Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirketler listelenemedi")
		}

		res := make([]CompanyResponse, 0, len(companies))
		for _, co := range companies {
			res = append(res, CompanyResponse{
				ID:        co.ID,
				Name:      co.Name,
				CreatedAt: co.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// -------------------------------------------------
// GET /api/companies/:companyId/employees
// Tablet giriş ekranının çalışan listesi; sadece aktifler.
// -------------------------------------------------
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Params("companyId")

		var employees []models.Employee
		if err := database.DB.
			Where("company_id = ? AND is_active = ?", companyID, true).
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
				IsActive:  e.IsActive,
			})
		}
		return c.JSON(res)
	}
}
