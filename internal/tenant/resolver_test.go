package tenant_test

import (
	"testing"

	"pdks-backend/internal/database"
	"pdks-backend/internal/models"
	"pdks-backend/internal/tenant"
	"pdks-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()
	u := models.User{FullName: "Test", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func createCompany(t *testing.T, name string) models.Company {
	t.Helper()
	co := models.Company{Name: name}
	require.NoError(t, database.DB.Create(&co).Error)
	return co
}

func linkCompany(t *testing.T, user models.User, co models.Company) {
	t.Helper()
	cu := models.CompanyUser{UserID: user.ID, CompanyID: co.ID}
	require.NoError(t, database.DB.Create(&cu).Error)
}

// SUPER_ADMIN, hesabından SONRA açılan şirketler dahil hepsini görür.
func TestAllowedCompanyIDs_SuperAdminTumSirketleriGorur(t *testing.T) {
	testutil.SetupTestDB(t)

	admin := createUser(t, "admin@test.local", models.RoleSuperAdmin)
	acme := createCompany(t, "Acme")
	beta := createCompany(t, "Beta")

	ids, err := tenant.AllowedCompanyIDs(admin.ID, admin.Role)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{acme.ID, beta.ID}, ids)

	// sonradan açılan şirket de anında görünmeli
	gamma := createCompany(t, "Gamma")
	ids, err = tenant.AllowedCompanyIDs(admin.ID, admin.Role)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{acme.ID, beta.ID, gamma.ID}, ids)
}

// Süper olmayan kullanıcı tam olarak CompanyUser satırlarındaki kümeyi görür.
func TestAllowedCompanyIDs_CompanyAdminSadeceBagliSirketler(t *testing.T) {
	testutil.SetupTestDB(t)

	ahmet := createUser(t, "ahmet@acme.local", models.RoleCompanyAdmin)
	acme := createCompany(t, "Acme")
	beta := createCompany(t, "Beta")

	// henüz hiçbir şirkete bağlı değil
	ids, err := tenant.AllowedCompanyIDs(ahmet.ID, ahmet.Role)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// satır eklenince şirket anında kümeye girer, başka şirket girmez
	linkCompany(t, ahmet, acme)
	ids, err = tenant.AllowedCompanyIDs(ahmet.ID, ahmet.Role)
	require.NoError(t, err)
	assert.Equal(t, []uint{acme.ID}, ids)
	assert.NotContains(t, ids, beta.ID)
}

func TestHasAccess_KapaliDunya(t *testing.T) {
	testutil.SetupTestDB(t)

	ahmet := createUser(t, "ahmet@acme.local", models.RoleCompanyAdmin)
	acme := createCompany(t, "Acme")
	beta := createCompany(t, "Beta") // var ama ahmet'le ilişkisiz
	linkCompany(t, ahmet, acme)

	ok, err := tenant.HasAccess(ahmet.ID, ahmet.Role, acme.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tenant.HasAccess(ahmet.ID, ahmet.Role, beta.ID)
	require.NoError(t, err)
	assert.False(t, ok, "CompanyUser satırı olmayan şirkete erişim olmamalı")
}

func TestHasAccess_SuperAdmin(t *testing.T) {
	testutil.SetupTestDB(t)

	admin := createUser(t, "admin@test.local", models.RoleSuperAdmin)
	acme := createCompany(t, "Acme")

	ok, err := tenant.HasAccess(admin.ID, admin.Role, acme.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// var olmayan şirket süper admin için bile erişilemez
	ok, err = tenant.HasAccess(admin.ID, admin.Role, acme.ID+999)
	require.NoError(t, err)
	assert.False(t, ok)
}
