package models

import "time"

// CompanyUser, bir kullanıcının bir şirkette işlem yapabileceğini söyleyen
// yetki kaydıdır. (user, company) çifti tekildir; kaydın yokluğu erişim
// olmadığı anlamına gelir (SUPER_ADMIN istisnası hariç).
type CompanyUser struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_company_user"`
	User      User
	CompanyID uint `gorm:"not null;uniqueIndex:idx_company_user"`
	Company   Company

	// Şirket bazlı rol ezmesi (opsiyonel; erişim çözümlemesi kullanmıyor)
	Role *UserRole `gorm:"size:20"`

	CreatedAt time.Time
}
