package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/feestindetent/booking-backend/internal/calendar"
	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/database"
	"github.com/feestindetent/booking-backend/internal/handlers"
	"github.com/feestindetent/booking-backend/internal/middleware"
	"github.com/feestindetent/booking-backend/internal/services"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis is optional: without it the availability cache and the
	// double-booking holds are disabled, but bookings still work.
	if err := services.InitRedis(cfg.RedisURL); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize storage (S3 or local fallback) for the tent gallery
	if err := services.InitStorage(cfg.BaseURL); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Calendar backend; degrades to the mock service without credentials
	cal := calendar.New(context.Background(), cfg.Google)

	mailer := utils.NewMailer(cfg.SMTP.From, cfg.SMTP.Password, cfg.SMTP.Host, cfg.SMTP.Port, cfg.BaseURL)

	// Live booking feed for the admin dashboard
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Serve locally stored gallery images
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		api.GET("/availability", handlers.GetAvailability(cal))
		api.GET("/tents", handlers.GetTentOptions())
		api.POST("/delivery/quote", handlers.QuoteDelivery(cfg))
		api.POST("/bookings", handlers.CreateBooking(db, cal, mailer, hub, cfg))
		api.GET("/bookings/approve", handlers.ApproveBooking(db, cal, mailer, cfg))

		api.POST("/auth/login", handlers.Login(cfg))

		// WebSocket connection for the admin dashboard
		api.GET("/ws", middleware.AuthMiddleware([]byte(cfg.JWTSecret)), handlers.WebSocketHandler(hub))

		// Protected admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
		{
			admin.GET("/bookings", handlers.GetBookings(db))
			admin.POST("/tents/:id/image", handlers.UploadTentImage())
		}
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
