package models

import "time"

type Employee struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
