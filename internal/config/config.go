package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	Ingestion IngestionConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// IngestionConfig holds defaults for the timesheet ingestion pipeline
// and the KPI collector.
type IngestionConfig struct {
	MaxUploadMB        int64
	DefaultCostPerHour float64
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work in deployment
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
		Name:     getEnv("DB_NAME", "kep-backend"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Ingestion configuration
	maxUploadMB, err := strconv.ParseInt(getEnv("INGESTION_MAX_UPLOAD_MB", "20"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid INGESTION_MAX_UPLOAD_MB: %w", err)
	}

	defaultCostPerHour, err := strconv.ParseFloat(getEnv("KPI_DEFAULT_COST_PER_HOUR", "250.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_DEFAULT_COST_PER_HOUR: %w", err)
	}

	config.Ingestion = IngestionConfig{
		MaxUploadMB:        maxUploadMB,
		DefaultCostPerHour: defaultCostPerHour,
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
	if c.Ingestion.MaxUploadMB <= 0 {
		return fmt.Errorf("INGESTION_MAX_UPLOAD_MB must be positive")
	}
	if c.Ingestion.DefaultCostPerHour < 0 {
		return fmt.Errorf("KPI_DEFAULT_COST_PER_HOUR must not be negative")
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
