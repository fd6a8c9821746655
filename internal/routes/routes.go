package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/vrshop-golang/internal/handlers"
	"github.com/01moynul/vrshop-golang/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Options carries the router settings that do not belong to the handlers.
type Options struct {
	AllowedOrigins []string
	Redis          *redis.Client // nil disables login rate limiting
	LoginRateLimit int           // attempts per minute per IP
	UploadDir      string        // served at /uploads when set
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	handlers.RegisterJSONFieldNames()

	router := gin.Default()

	// --- APPLY THE CORS AND ORIGIN GUARDS ---
	// These must be the very first things the router uses
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	router.Use(middleware.SameOriginGuard(opts.AllowedOrigins))

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	// --- Ping Route (Public) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Auth Routes (Public, rate limited) ---
	limit := middleware.RateLimiter(opts.Redis, opts.LoginRateLimit, time.Minute)
	router.POST("/register", limit, h.Register)
	router.POST("/login", limit, h.Login)
	router.POST("/logout", h.Logout)

	api := router.Group("/api")
	{
		// --- Public Routes ---
		api.GET("/config", h.PublicConfig)
		api.GET("/products", h.ListProducts)

		// --- Protected Routes (Login Required) ---
		member := api.Group("/")
		member.Use(middleware.AuthMiddleware())
		{
			member.GET("/me", h.Me)
			member.GET("/comentarios", h.ListComments)
			member.POST("/comentarios", h.CreateComment)
		}

		// --- Admin-Only Routes ---
		admin := api.Group("/products")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.Users))
		{
			admin.POST("", h.CreateProduct)
			admin.POST("/image", h.UploadProductImage)
			admin.DELETE("/:id", h.DeleteProduct)
		}
	}

	// --- Purchase Ledger (Login Required) ---
	purchases := router.Group("/compras")
	purchases.Use(middleware.AuthMiddleware())
	{
		purchases.GET("", h.ListMyPurchases)
		purchases.POST("", h.CreatePurchase)
	}

	return router
}
