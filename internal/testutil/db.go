// Package testutil testlerin paylaştığı küçük kurulum yardımcıları.
package testutil

import (
	"fmt"
	"testing"

	"pdks-backend/internal/config"
	"pdks-backend/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB her test için izole bir in-memory sqlite açar, şemayı kurar ve
// global database.DB'yi ona çevirir. cache=shared olmadan gorm'un connection
// pool'u her bağlantıda ayrı boş veritabanı görür.
func SetupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
}

// TestConfig testlerde kullanılan sabit ayarlar.
func TestConfig() *config.Config {
	return &config.Config{
		HTTPPort:    "0",
		JWTSecret:   "test-secret-test-secret-test-secret!",
		CORSOrigins: "http://localhost:5173",
	}
}
