// Demo verisi: süper admin, bir şirket, şirket admini, iki çalışan,
// bir tablet ve birkaç giriş/çıkış logu. Tekrar çalıştırmak güvenlidir.
package main

import (
	"log"
	"time"

	"pdks-backend/internal/config"
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func mustHash(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("şifre hashlenemedi: %v", err)
	}
	return string(h)
}

func main() {
	cfg := config.Load()
	database.Init(cfg)
	db := database.DB

	log.Println("Seed başlıyor…")

	superAdmin := models.User{
		FullName:     "Süper Admin",
		Email:        "sen@admin.local",
		PasswordHash: mustHash("Admin123!"),
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Where("email = ?", superAdmin.Email).FirstOrCreate(&superAdmin).Error; err != nil {
		log.Fatalf("süper admin oluşturulamadı: %v", err)
	}

	ahmet := models.User{
		FullName:     "Ahmet Yılmaz",
		Email:        "ahmet@acme.local",
		PasswordHash: mustHash("Ahmet123!"),
		Role:         models.RoleCompanyAdmin,
	}
	if err := db.Where("email = ?", ahmet.Email).FirstOrCreate(&ahmet).Error; err != nil {
		log.Fatalf("şirket admini oluşturulamadı: %v", err)
	}

	company := models.Company{Name: "Sirket 1"}
	if err := db.Where("name = ?", company.Name).FirstOrCreate(&company).Error; err != nil {
		log.Fatalf("şirket oluşturulamadı: %v", err)
	}

	// Yetki kaydı: ahmet yalnızca bu şirkete erişir
	cu := models.CompanyUser{UserID: ahmet.ID, CompanyID: company.ID}
	if err := db.Where("user_id = ? AND company_id = ?", ahmet.ID, company.ID).
		FirstOrCreate(&cu).Error; err != nil {
		log.Fatalf("şirket yetkisi oluşturulamadı: %v", err)
	}

	mehmet := models.Employee{CompanyID: company.ID, FirstName: "Mehmet", LastName: "Kaya", IsActive: true}
	if err := db.Where("company_id = ? AND first_name = ? AND last_name = ?", company.ID, "Mehmet", "Kaya").
		FirstOrCreate(&mehmet).Error; err != nil {
		log.Fatalf("çalışan oluşturulamadı: %v", err)
	}

	ayse := models.Employee{CompanyID: company.ID, FirstName: "Ayşe", LastName: "Demir", IsActive: true}
	if err := db.Where("company_id = ? AND first_name = ? AND last_name = ?", company.ID, "Ayşe", "Demir").
		FirstOrCreate(&ayse).Error; err != nil {
		log.Fatalf("çalışan oluşturulamadı: %v", err)
	}

	now := time.Now()
	device := models.Device{
		CompanyID:    company.ID,
		TabletNumber: "T1",
		PasswordHash: mustHash("Tablet123!"),
		ApiKey:       "seed-device-apikey-0000000000000000000000000000000000000001",
		LastSeen:     &now,
	}
	if err := db.Where("company_id = ? AND tablet_number = ?", company.ID, "T1").
		FirstOrCreate(&device).Error; err != nil {
		log.Fatalf("cihaz oluşturulamadı: %v", err)
	}

	var logCount int64
	db.Model(&models.AttendanceLog{}).Where("company_id = ?", company.ID).Count(&logCount)
	if logCount == 0 {
		aFew := func(mins int) time.Time { return now.Add(-time.Duration(mins) * time.Minute) }
		logs := []models.AttendanceLog{
			{CompanyID: company.ID, EmployeeID: mehmet.ID, Action: models.AttendanceIn, RecordedBy: "seed", Timestamp: aFew(60)},
			{CompanyID: company.ID, EmployeeID: mehmet.ID, Action: models.AttendanceOut, RecordedBy: "seed", Timestamp: aFew(45)},
			{CompanyID: company.ID, EmployeeID: ayse.ID, Action: models.AttendanceIn, RecordedBy: "seed", Timestamp: aFew(30)},
			{CompanyID: company.ID, EmployeeID: ayse.ID, Action: models.AttendanceOut, RecordedBy: "seed", Timestamp: aFew(15)},
		}
		if err := db.Create(&logs).Error; err != nil {
			log.Fatalf("loglar oluşturulamadı: %v", err)
		}
	}

	log.Println("Seed tamamlandı:")
	log.Printf("  superAdmin: %s", superAdmin.Email)
	log.Printf("  company: %s", company.Name)
	log.Printf("  companyAdmin: %s", ahmet.Email)
	log.Printf("  deviceApiKey: %s", device.ApiKey)
}
