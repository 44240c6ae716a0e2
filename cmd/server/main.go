package main

import (
	"log"
	"strings"

	"pdks-backend/internal/admin"
	"pdks-backend/internal/attendance"
	"pdks-backend/internal/audit"
	"pdks-backend/internal/auth"
	"pdks-backend/internal/company"
	"pdks-backend/internal/config"
	"pdks-backend/internal/database"
	"pdks-backend/internal/device"
	"pdks-backend/internal/equipment"
	"pdks-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":  "Beklenmeyen sunucu hatası",
				"detail": err.Error(),
			})
		},
	})

	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-api-key",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))
	// İlk kullanıcı serbest, sonrası SUPER_ADMIN token ister (handler içinde)
	api.Post("/admin/register", auth.RegisterHandler(cfg))

	// Login öncesi metadata + tablet akışı
	api.Get("/companies", company.ListCompaniesHandler())
	api.Get("/companies/:companyId/employees", company.ListEmployeesHandler())
	api.Post("/companies/:companyId/attendance", attendance.CreateManualAttendanceHandler(cfg))

	// Cihaz (tablet) uçları
	api.Post("/devices/register", device.RegisterHandler())
	deviceRoutes := api.Group("/device")
	deviceRoutes.Use(device.AuthMiddleware())
	deviceRoutes.Get("/employees", device.ListEmployeesHandler())
	deviceRoutes.Post("/attendance", device.CreateAttendanceHandler())
	deviceRoutes.Post("/equipment", device.CreateEquipmentHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Şirket kapsamlı loglar
	protected.Get("/companies/:companyId/logs", attendance.ListCompanyLogsHandler())
	protected.Get("/companies/:companyId/logs.csv", attendance.ExportCompanyLogsCSVHandler())
	protected.Get("/companies/:companyId/equipment-logs", equipment.ListCompanyLogsHandler())

	// Admin paneli okuma uçları (kapsam, handler içinde resolver ile daraltılıyor)
	adminRoutes := protected.Group("/admin")
	adminRoutes.Get("/my-devices", admin.MyDevicesHandler())
	adminRoutes.Get("/my-employees", admin.MyEmployeesHandler())
	adminRoutes.Get("/attendance-logs", attendance.ListAdminLogsHandler())

	// Yazma uçları admin rolü ister; resolver ayrıca şirket erişimini kontrol eder
	manageRoutes := adminRoutes.Group("")
	manageRoutes.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleCompanyAdmin))
	manageRoutes.Post("/companies/:id/employees", admin.CreateEmployeeHandler())
	manageRoutes.Put("/employees/:id", admin.UpdateEmployeeHandler())
	manageRoutes.Delete("/employees/:id", admin.DeactivateEmployeeHandler())

	// Super admin routes
	superRoutes := adminRoutes.Group("")
	superRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))
	superRoutes.Post("/companies", admin.CreateCompanyHandler())
	superRoutes.Put("/companies/:id", admin.UpdateCompanyHandler())
	superRoutes.Delete("/companies/:id", admin.DeleteCompanyHandler())
	superRoutes.Put("/devices/:id/owner", admin.AssignDeviceOwnerHandler())
	superRoutes.Post("/attach-company-admin", admin.AttachCompanyAdminHandler())
	superRoutes.Get("/users", admin.ListUsersHandler())
	superRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
