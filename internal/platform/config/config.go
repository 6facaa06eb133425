package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	Environment       string
	BusinessTimezone  string
	RedisAddr         string
	RedisPassword     string
	RunMigrations     bool
	MigrationsDir     string
	RunSeed           bool
	AutoCloseInterval time.Duration
	PayrollInterval   time.Duration
	MaxBodyBytes      int64
	MetricsEnabled    bool
	SeedAdminUsername string
	SeedAdminPassword string
	SeedDailyRate     float64
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		Environment:       getEnv("APP_ENV", "development"),
		BusinessTimezone:  getEnv("BUSINESS_TIMEZONE", "Asia/Manila"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		RunSeed:           getEnvBool("RUN_SEED", true),
		AutoCloseInterval: getEnvDuration("AUTO_CLOSE_INTERVAL", time.Hour),
		PayrollInterval:   getEnvDuration("PAYROLL_INTERVAL", 24*time.Hour),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedDailyRate:     getEnvFloat("SEED_DAILY_RATE", 550),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := time.LoadLocation(c.BusinessTimezone); err != nil {
		return fmt.Errorf("BUSINESS_TIMEZONE %q is not a valid IANA zone", c.BusinessTimezone)
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.AutoCloseInterval <= 0 {
		return fmt.Errorf("AUTO_CLOSE_INTERVAL must be positive")
	}
	if c.SeedDailyRate <= 0 {
		return fmt.Errorf("SEED_DAILY_RATE must be greater than zero")
	}
	return nil
}

// Location resolves the business timezone; Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
