package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the tuning knobs for the check-in/check-out flow.
type AttendanceConfig struct {
	// MaxAccuracyMeters rejects a check-in/check-out whose reported GPS
	// accuracy exceeds this value, before any geofence matching happens.
	MaxAccuracyMeters float64

	// GracePeriodMinutes is the window after shift start during which a
	// check-in still counts as present.
	GracePeriodMinutes int

	// Timezone is the clinic's local timezone, used to derive the working
	// date from a check-in timestamp.
	Timezone string

	// StatusCacheTTL bounds staleness of the today-status snapshot. The
	// cache is invalidated on every transition; the TTL is only a backstop.
	StatusCacheTTL time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "klinik"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	maxAccuracy, err := strconv.ParseFloat(getEnv("ATTENDANCE_MAX_ACCURACY_METERS", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_MAX_ACCURACY_METERS: %w", err)
	}

	gracePeriod, err := strconv.Atoi(getEnv("ATTENDANCE_GRACE_PERIOD_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GRACE_PERIOD_MINUTES: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("ATTENDANCE_STATUS_CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_STATUS_CACHE_TTL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		MaxAccuracyMeters:  maxAccuracy,
		GracePeriodMinutes: gracePeriod,
		Timezone:           getEnv("ATTENDANCE_TIMEZONE", "Asia/Jakarta"),
		StatusCacheTTL:     cacheTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.MaxAccuracyMeters <= 0 {
		return fmt.Errorf("ATTENDANCE_MAX_ACCURACY_METERS must be positive")
	}
	if c.Attendance.GracePeriodMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_PERIOD_MINUTES must not be negative")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
