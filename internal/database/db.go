package database

import (
	"log"

	"pdks-backend/internal/config"
	"pdks-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate tüm modelleri migrate eder. Testler aynı listeyi sqlite üzerinde
// kullanıyor, o yüzden Init'ten ayrı.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyUser{},
		&models.Device{},
		&models.Employee{},
		&models.AttendanceLog{},
		&models.EquipmentLog{},
		&models.AuditLog{},
	)
}
