package admin

import (
	"log"
	"strings"

	"pdks-backend/internal/audit"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCompanyRequest struct {
	Name string `json:"name"`
}

type UpdateCompanyRequest struct {
	Name *string `json:"name"`
}

type CompanyResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ----------------------------------------
// ŞİRKET CRUD (SUPER_ADMIN)
// ----------------------------------------

func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body CreateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şirket adı boş olamaz")
		}

		var exists models.Company
		if err := database.DB.Where("name = ?", body.Name).First(&exists).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde şirket zaten var")
		}

		company := models.Company{Name: body.Name}
		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket oluşturulamadı")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &company.ID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "company",
			EntityID:    company.ID,
			Action:      models.AuditActionCreate,
			Description: "Şirket oluşturuldu: " + company.Name,
			After:       company,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.Status(fiber.StatusCreated).JSON(CompanyResponse{
			ID:        company.ID,
			Name:      company.Name,
			CreatedAt: company.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func UpdateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var company models.Company
		if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}
		before := company

		var body UpdateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Şirket adı boş olamaz")
			}
			company.Name = name
		}

		if err := database.DB.Save(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket güncellenemedi")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &company.ID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "company",
			EntityID:    company.ID,
			Action:      models.AuditActionUpdate,
			Description: "Şirket güncellendi: " + company.Name,
			Before:      before,
			After:       company,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.JSON(CompanyResponse{
			ID:        company.ID,
			Name:      company.Name,
			CreatedAt: company.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, _, err := getUserInfo(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var company models.Company
		if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şirket bulunamadı")
		}

		if err := database.DB.Delete(&models.Company{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şirket silinemedi")
		}

		if err := audit.WriteLog(audit.LogOptions{
			CompanyID:   &company.ID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "company",
			EntityID:    company.ID,
			Action:      models.AuditActionDelete,
			Description: "Şirket silindi: " + company.Name,
			Before:      company,
		}); err != nil {
			log.Printf("audit yazılamadı: %v", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
