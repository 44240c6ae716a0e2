package models

import "time"

// Device fiziksel bir tablet terminalidir. Kullanıcı token'ı ile değil
// api key ile kimlik doğrular ve tek bir şirkete bağlıdır.
type Device struct {
	ID           uint `gorm:"primaryKey"`
	CompanyID    uint `gorm:"not null;uniqueIndex:idx_device_company_tablet"`
	Company      Company
	TabletNumber string `gorm:"size:50;not null;uniqueIndex:idx_device_company_tablet"`
	PasswordHash string `gorm:"size:255;not null"`
	ApiKey       string `gorm:"size:64;uniqueIndex;not null"`
	OwnerUserID  *uint
	OwnerUser    *User
	LastSeen     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
