package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdks-backend/internal/auth"
	"pdks-backend/internal/config"
	"pdks-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAuthApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/api/auth/login", auth.LoginHandler(cfg))
	app.Post("/api/admin/register", auth.RegisterHandler(cfg))
	app.Get("/api/auth/me", auth.JWTMiddleware(cfg), auth.MeHandler())
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, bearer string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	resp.Body.Close()
	return m
}

// Bootstrap: sistemde kullanıcı yokken ilk kayıt serbest, ikincisi
// SUPER_ADMIN token'ı olmadan 403.
func TestRegister_Bootstrap(t *testing.T) {
	testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	app := buildAuthApp(cfg)

	resp := postJSON(t, app, "/api/admin/register", "", fiber.Map{
		"fullName": "Süper Admin",
		"email":    "sen@admin.local",
		"password": "Admin123!",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "SUPER_ADMIN", body["role"], "rol verilmezse SUPER_ADMIN varsayılır")

	// ikinci kayıt token'sız reddedilir
	resp = postJSON(t, app, "/api/admin/register", "", fiber.Map{
		"fullName": "Davetsiz",
		"email":    "davetsiz@test.local",
		"password": "Sifre123!",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegister_SuperAdminTokenIleDevam(t *testing.T) {
	testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	app := buildAuthApp(cfg)

	resp := postJSON(t, app, "/api/admin/register", "", fiber.Map{
		"fullName": "Süper Admin",
		"email":    "sen@admin.local",
		"password": "Admin123!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"email":    "sen@admin.local",
		"password": "Admin123!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	resp = postJSON(t, app, "/api/admin/register", token, fiber.Map{
		"fullName": "Ahmet Yılmaz",
		"email":    "ahmet@acme.local",
		"password": "Ahmet123!",
		"role":     "COMPANY_ADMIN",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "COMPANY_ADMIN", body["role"])

	// aynı email tekrar kaydedilemez
	resp = postJSON(t, app, "/api/admin/register", token, fiber.Map{
		"fullName": "Ahmet Kopya",
		"email":    "ahmet@acme.local",
		"password": "Baska123!",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// /auth/me, login ile aynı camelCase anahtarları döner.
func TestMe_AlanAdlari(t *testing.T) {
	testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	app := buildAuthApp(cfg)

	resp := postJSON(t, app, "/api/admin/register", "", fiber.Map{
		"fullName": "Süper Admin",
		"email":    "sen@admin.local",
		"password": "Admin123!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"email":    "sen@admin.local",
		"password": "Admin123!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody(t, resp)
	token := login["token"].(string)
	loginUser := login["user"].(map[string]any)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	me := decodeBody(t, meResp)

	for _, key := range []string{"id", "fullName", "email", "role", "companyIds"} {
		assert.Contains(t, me, key)
	}
	assert.Equal(t, loginUser["id"], me["id"])
	assert.Equal(t, loginUser["fullName"], me["fullName"])
	assert.NotContains(t, me, "user_id")
	assert.NotContains(t, me, "company_ids")
}

func TestLogin_HataliSifre(t *testing.T) {
	testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	app := buildAuthApp(cfg)

	resp := postJSON(t, app, "/api/admin/register", "", fiber.Map{
		"fullName": "Süper Admin",
		"email":    "sen@admin.local",
		"password": "Admin123!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"email":    "sen@admin.local",
		"password": "yanlis-sifre",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"email":    "yok@test.local",
		"password": "Admin123!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
