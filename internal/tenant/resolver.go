// Package tenant şirket bazlı erişim kararlarının tek noktasıdır.
// Şirket kapsamlı her kullanıcı endpoint'i okuma/yazma öncesi buradan
// geçmek zorundadır.
package tenant

import (
	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
)

// AllowedCompanyIDs bir kullanıcının dokunabileceği şirket id'lerini döner.
// SUPER_ADMIN için kayıtlı tüm şirketler; diğer roller için yalnızca
// CompanyUser satırlarındaki şirketler. Satır yoksa erişim yoktur,
// örtük bir izin tanımı bulunmaz.
func AllowedCompanyIDs(userID uint, role models.UserRole) ([]uint, error) {
	ids := []uint{}

	if role == models.RoleSuperAdmin {
		if err := database.DB.Model(&models.Company{}).Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		return ids, nil
	}

	if err := database.DB.Model(&models.CompanyUser{}).
		Where("user_id = ?", userID).
		Pluck("company_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// HasAccess, companyID'nin AllowedCompanyIDs kümesinde olup olmadığıdır.
func HasAccess(userID uint, role models.UserRole, companyID uint) (bool, error) {
	var count int64

	if role == models.RoleSuperAdmin {
		// Var olmayan şirkete kimse erişemez, süper admin bile
		if err := database.DB.Model(&models.Company{}).
			Where("id = ?", companyID).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	if err := database.DB.Model(&models.CompanyUser{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
