// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"time"

	"cardlink/internal/config"
	"cardlink/internal/metrics"
	"cardlink/internal/repositories"
	"cardlink/internal/routes"
	"cardlink/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	log "github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if config.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute))

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	log.Info("connected to database")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warnf("failed to close database connection: %v", err)
		}
		if err := repositories.CacheService.Close(); err != nil {
			log.Warnf("failed to close redis connection: %v", err)
		}
	}()

	// Cached cards may predate a restart; start from a clean slate.
	if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
		log.Warnf("failed to flush redis cache: %v", err)
	}

	photos, err := storage.NewFromConfig(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize photo storage: %v", err)
	}

	metrics.Register()

	app := fiber.New(fiber.Config{
		BodyLimit: config.GetIntEnv("MAX_UPLOAD_BYTES", 5*1024*1024),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, repositories.DB, photos)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "8080")))
}
