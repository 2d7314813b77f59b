package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "jwt_secret")
		t.Setenv("STORAGE_URL", "https://storage.example.com")
		t.Setenv("STORAGE_SERVICE_KEY", "service_key")
		t.Setenv("STORAGE_BUCKET", "test-bucket")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "jwt_secret", cfg.JWTSecret)
		assert.Equal(t, "https://storage.example.com", cfg.StorageURL)
		assert.Equal(t, "service_key", cfg.StorageKey)
		assert.Equal(t, "test-bucket", cfg.StorageBucket)
	})

	t.Run("Defaults applied when optional vars missing", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("SHOP_TIMEZONE", "")
		t.Setenv("STORAGE_BUCKET", "")

		cfg := LoadConfig()

		assert.Equal(t, "Asia/Kolkata", cfg.ShopTimezone)
		assert.Equal(t, "order-files", cfg.StorageBucket)
	})
}
