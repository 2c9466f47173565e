// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"cardlink/internal/config"
	"cardlink/internal/handlers"
	"cardlink/internal/middleware"
	"cardlink/internal/repositories"
	"cardlink/internal/services/auth"
	"cardlink/internal/services/card"
	"cardlink/internal/services/scan"
	"cardlink/internal/services/stats"
	"cardlink/internal/storage"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
// Everything under the operator middleware requires a valid session token;
// the card-view, scan, vcard and photo paths are public because they are
// the shared-link target.
func SetupRoutes(app *fiber.App, db *gorm.DB, photos storage.Storage) {
	cardRepo := repositories.NewCardRepository(db, repositories.CacheService)
	scanRepo := repositories.NewScanRepository(db)

	authService := auth.NewService(auth.Config{
		Secret:     config.GetEnv("ADMIN_PASSWORD", "admin123"),
		SecretHash: config.GetEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:  config.GetEnv("JWT_SECRET", "dev-secret-key-change-in-production"),
		TokenTTL:   config.GetDurationEnv("TOKEN_TTL", 0),
	})
	cardService := card.NewService(cardRepo, scanRepo, photos)
	scanService := scan.NewService(cardRepo, scanRepo)
	statsService := stats.NewService(cardRepo, scanRepo)

	baseURL := config.GetEnv("BASE_URL", "http://localhost:8080")

	authHandler := handlers.NewAuthHandler(authService)
	cardHandler := handlers.NewCardHandler(cardService, baseURL)
	scanHandler := handlers.NewScanHandler(scanService)
	statsHandler := handlers.NewStatsHandler(statsService)
	vcardHandler := handlers.NewVCardHandler(cardService, baseURL)
	photoHandler := handlers.NewPhotoHandler(photos)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/cards/:id", cardHandler.Get)
	api.Post("/cards/:id/scan", scanHandler.Record)
	api.Get("/cards/:id/vcard", vcardHandler.Download)
	api.Get("/photos/:filename", photoHandler.Get)

	// Operator endpoints
	protected := api.Group("/", authMiddleware.Handler)
	protected.Get("/cards", cardHandler.List)
	protected.Post("/cards", cardHandler.Create)
	protected.Put("/cards/:id", cardHandler.Update)
	protected.Delete("/cards/:id", cardHandler.Delete)
	protected.Get("/stats", statsHandler.Global)
	protected.Get("/stats/:id", statsHandler.ForCard)
}
