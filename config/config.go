package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port                  string
	GoEnv                 string
	DatabaseURL           string
	DBPath                string
	IABaseURL             string
	GoogleSheetsID        string
	GoogleCredentialsFile string
	LinksJWTSecret        string
	AdminAPIURL           string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		Port:                  getEnv("PORT", "3000"),
		GoEnv:                 env,
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		DBPath:                getEnv("DB_PATH", "database/pedidos.db"),
		IABaseURL:             getEnv("IA_BASE_URL", "http://ia.seuservidor.local"),
		GoogleSheetsID:        getEnv("GOOGLE_SHEETS_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "config/service-account.json"),
		LinksJWTSecret:        getEnv("LINKS_JWT_SECRET", ""),
		AdminAPIURL:           getEnv("ADMIN_API_URL", "http://localhost:3000"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && c.DBPath == "" {
		return fmt.Errorf("either DATABASE_URL or DB_PATH is required")
	}
	return nil
}

// UsesPostgres returns true when a PostgreSQL connection string is configured.
// Otherwise the service falls back to the local SQLite file.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
