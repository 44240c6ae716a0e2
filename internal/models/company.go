package models

import "time"

// Company tenant sınırıdır: tüm operasyonel veriler tek bir şirkete aittir.
type Company struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []CompanyUser
}
