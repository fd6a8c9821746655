package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "DB_DSN_PRIMARY", "REDIS_ADDR", "PRODUCT_CACHE_TTL",
		"LOGIN_RATE_LIMIT", "JWT_SECRET", "SESSION_TTL", "COOKIE_SECURE", "ALLOWED_ORIGINS",
		"UPLOAD_DIR", "BASE_URL", "VERIFY_PURCHASE_TOTAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.False(t, cfg.VerifyPurchaseTotal)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("LOGIN_RATE_LIMIT", "10")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com ,")
	t.Setenv("VERIFY_PURCHASE_TOTAL", "1")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.Driver)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.VerifyPurchaseTotal)
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	t.Setenv("LOGIN_RATE_LIMIT", "lots")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
}
