package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port          string
	Origin        string
	Environment   string
	Timezone      string
	SweepSchedule string
	Database      DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinica"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	return &Config{
		Port:          getEnv("PORT", "3000"),
		Origin:        getEnv("ORIGIN", "http://localhost:4200"),
		Environment:   getEnv("APP_ENV", "development"),
		Timezone:      getEnv("TIMEZONE", "America/Mexico_City"),
		SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 0 * * *"),
		Database:      dbConfig,
	}, nil
}

// Location resolves the configured facility timezone. All appointment
// calendar math happens in this location.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
