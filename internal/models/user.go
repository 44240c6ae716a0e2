package models

import "time"

type UserRole string

const (
	RoleSuperAdmin   UserRole = "SUPER_ADMIN"
	RoleCompanyAdmin UserRole = "COMPANY_ADMIN"
	RoleUser         UserRole = "USER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	FullName     string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
