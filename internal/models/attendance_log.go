package models

import "time"

type AttendanceAction string

const (
	AttendanceIn  AttendanceAction = "IN"
	AttendanceOut AttendanceAction = "OUT"
)

// AttendanceLog giriş/çıkış olayıdır. Oluşturulduktan sonra değiştirilmez,
// sadece eklenir; bu yüzden UpdatedAt alanı yok.
type AttendanceLog struct {
	ID         uint `gorm:"primaryKey"`
	CompanyID  uint `gorm:"index;not null"`
	EmployeeID uint `gorm:"index;not null"`
	Employee   Employee
	Action     AttendanceAction `gorm:"size:10;not null"`
	Timestamp  time.Time        `gorm:"index;not null"`
	RecordedBy string           `gorm:"size:100"` // kaydın kaynağı, ör. "tablet-T1"
	CreatedAt  time.Time
}
