package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Authentication and session configuration
	Auth AuthConfig

	// Admin back-office configuration
	Admin AdminConfig

	// Scheduled maintenance configuration
	Maintenance MaintenanceConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds session and sign-up settings
type AuthConfig struct {
	BaseURL        string
	CookieName     string
	SecureCookie   bool
	SessionTTL     time.Duration
	UpdateAge      time.Duration
	CookieCacheTTL time.Duration
	SignUpEnabled  bool
}

// AdminConfig holds admin back-office settings
type AdminConfig struct {
	DraftTTL time.Duration
}

// MaintenanceConfig holds cron schedules for background maintenance
type MaintenanceConfig struct {
	SessionPurgeSchedule string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables.
// Values from .env.local and .env are loaded first when present; real
// environment variables always win.
func Load() (*Config, error) {
	loadDotEnv(".env.local", ".env")

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "portfolio"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			BaseURL:        getEnv("AUTH_BASE_URL", "http://localhost:3000"),
			CookieName:     getEnv("AUTH_COOKIE_NAME", "portfolio_session"),
			SecureCookie:   getBoolEnv("AUTH_SECURE_COOKIE", false),
			SessionTTL:     getDurationEnv("AUTH_SESSION_TTL", 7*24*time.Hour),
			UpdateAge:      getDurationEnv("AUTH_SESSION_UPDATE_AGE", 24*time.Hour),
			CookieCacheTTL: getDurationEnv("AUTH_COOKIE_CACHE_TTL", 5*time.Minute),
			SignUpEnabled:  getBoolEnv("AUTH_SIGNUP_ENABLED", true),
		},
		Admin: AdminConfig{
			DraftTTL: getDurationEnv("ADMIN_DRAFT_TTL", 30*time.Minute),
		},
		Maintenance: MaintenanceConfig{
			SessionPurgeSchedule: getEnv("SESSION_PURGE_SCHEDULE", "@hourly"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("AUTH_SESSION_TTL must be positive")
	}
	if c.Auth.UpdateAge <= 0 || c.Auth.UpdateAge > c.Auth.SessionTTL {
		return fmt.Errorf("AUTH_SESSION_UPDATE_AGE must be positive and not exceed AUTH_SESSION_TTL")
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// loadDotEnv loads each existing file without overriding variables already set.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
