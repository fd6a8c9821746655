package main

import (
	"context"
	"log"
	"time"

	"github.com/01moynul/vrshop-golang/internal/auth"
	"github.com/01moynul/vrshop-golang/internal/cache"
	"github.com/01moynul/vrshop-golang/internal/config"
	"github.com/01moynul/vrshop-golang/internal/database"
	"github.com/01moynul/vrshop-golang/internal/handlers"
	"github.com/01moynul/vrshop-golang/internal/routes"
	"github.com/01moynul/vrshop-golang/internal/store"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	config.LoadDotEnv()
	cfg := config.Load()

	// 1. --- Sessions ---
	if cfg.JWTSecret == "" {
		log.Fatal("CRITICAL ERROR: JWT_SECRET environment variable is not set.")
	}
	auth.Configure([]byte(cfg.JWTSecret), cfg.SessionTTL)

	// 2. --- Store (MySQL or in-memory) ---
	var s store.Store
	switch cfg.Driver {
	case "mysql":
		db, err := database.OpenDB()
		if err != nil {
			log.Fatalf("Failed to connect to primary database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		s = store.NewMySQL(db)
	case "memory":
		log.Println("WARNING: STORE_DRIVER=memory. Data is lost when the server stops.")
		s = store.NewMemory()
	default:
		log.Fatalf("CRITICAL ERROR: unknown STORE_DRIVER %q (want mysql or memory)", cfg.Driver)
	}

	// 3. --- Redis (optional) ---
	rdb := cache.NewRedisClient(cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	}
	products := cache.NewProductCache(s, rdb, cfg.ProductCacheTTL)

	// --- Application Setup ---
	app := handlers.New(s, products, auth.NewCaptchaVerifier(cfg.RecaptchaSecret), handlers.Settings{
		VerifyPurchaseTotal: cfg.VerifyPurchaseTotal,
		CookieSecure:        cfg.CookieSecure,
		UploadDir:           cfg.UploadDir,
		BaseURL:             cfg.BaseURL,
		RecaptchaSiteKey:    cfg.RecaptchaSiteKey,
	})

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Redis:          rdb,
		LoginRateLimit: cfg.LoginRateLimit,
		UploadDir:      cfg.UploadDir,
	})

	// --- Start Server ---
	log.Printf("Starting VR Shop API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
