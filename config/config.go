package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds application configuration values.
type Config struct {
	AppPort      string
	DatabaseDSN  string
	JWTSecret    string
	TokenExpires time.Duration
	GinMode      string
	PollInterval time.Duration
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:      getEnv("APP_PORT", "8080"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "root:root@tcp(127.0.0.1:3306)/lam3a?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenExpires: getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		GinMode:      getEnv("GIN_MODE", "debug"),
		PollInterval: getEnvDuration("CHANGE_POLL_MS", 500) * time.Millisecond,
	}
}

// InitDB opens the MySQL connection used by the whole process.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
