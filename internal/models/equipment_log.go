package models

import "time"

// EquipmentLog tabletten gelen ekipman ölçümüdür (ör. buzdolabı sıcaklığı).
// AttendanceLog gibi sadece eklenir.
type EquipmentLog struct {
	ID         uint `gorm:"primaryKey"`
	CompanyID  uint `gorm:"index;not null"`
	DeviceID   *uint
	Device     *Device
	Key        string `gorm:"size:100;not null"` // ör. "buzdolabi_set_sicaklik"
	Value      string `gorm:"size:255;not null"`
	Unit       string `gorm:"size:20"` // ör. "°C"
	RecordedBy string `gorm:"size:100"`
	CreatedAt  time.Time
}
