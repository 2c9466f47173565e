// Package repositories provides the data access layer.
// It handles all database operations and data persistence logic.
package repositories

import (
	"time"

	"cardlink/internal/config"
	"cardlink/internal/models"
	"cardlink/internal/repositories/cache"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService fronts hot card reads; nil when Redis is not configured.
var CacheService *cache.CacheService

// InitDB initializes the PostgreSQL connection, runs migrations and,
// when configured, connects the Redis cache.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "cardlink") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	logLevel := logger.Warn
	if !config.IsProduction() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(&models.Card{}, &models.Scan{}); err != nil {
		return err
	}

	if host := config.GetEnv("REDIS_HOST", ""); host != "" {
		redisClient := cache.NewRedisClient(&cache.RedisConfig{
			Host:     host,
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		CacheService = cache.NewCacheService(redisClient, config.GetDurationEnv("CACHE_TTL", time.Hour))
		log.Infof("redis cache enabled at %s", host)
	}

	return nil
}
