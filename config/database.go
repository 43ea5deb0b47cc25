package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDatabase opens the order database and returns the handle.
// With DATABASE_URL set it connects to PostgreSQL; otherwise it uses the
// local SQLite file at DB_PATH, creating the directory when needed.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	if cfg.UsesPostgres() {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established successfully (postgres)")
		return db, nil
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("Database connection established successfully (sqlite: %s)", cfg.DBPath)
	return db, nil
}
