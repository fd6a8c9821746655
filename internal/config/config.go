// Package config reads the server settings from the environment.
// Call godotenv.Load (or LoadDotEnv) first so a local .env file is honoured.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything cmd/api needs to wire the server.
type Config struct {
	Port   string
	Driver string // "mysql" or "memory"
	DSN    string

	RedisAddr       string
	ProductCacheTTL time.Duration
	LoginRateLimit  int

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	AllowedOrigins []string

	RecaptchaSiteKey string
	RecaptchaSecret  string

	UploadDir string
	BaseURL   string

	VerifyPurchaseTotal bool
}

// LoadDotEnv loads .env into the process environment if the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
}

// Load builds a Config from the environment, applying defaults.
func Load() Config {
	port := getEnv("PORT", "8080")
	return Config{
		Port:   port,
		Driver: getEnv("STORE_DRIVER", "mysql"),
		DSN:    os.Getenv("DB_DSN_PRIMARY"),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ProductCacheTTL: getDuration("PRODUCT_CACHE_TTL", 5*time.Minute),
		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 5),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		SessionTTL:   getDuration("SESSION_TTL", 72*time.Hour),
		CookieSecure: getBool("COOKIE_SECURE", false),

		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"http://localhost:" + port}),

		RecaptchaSiteKey: os.Getenv("RECAPTCHA_SITE_KEY"),
		RecaptchaSecret:  os.Getenv("RECAPTCHA_SECRET"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:"+port),

		VerifyPurchaseTotal: getBool("VERIFY_PURCHASE_TOTAL", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARNING: %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARNING: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
