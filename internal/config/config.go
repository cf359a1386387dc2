// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"solvest-backend/pkg/db"
)

// Storage driver selectors.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort      string
	StorageDriver   string
	AccrualInterval time.Duration
	DB              db.Config
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	storageDriver := os.Getenv("STORAGE_DRIVER")
	if storageDriver == "" {
		storageDriver = StoragePostgres
	}
	if storageDriver != StoragePostgres && storageDriver != StorageMemory {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: must be %q or %q",
			storageDriver, StoragePostgres, StorageMemory)
	}

	accrualInterval := 24 * time.Hour
	if v := os.Getenv("ACCRUAL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCRUAL_INTERVAL: %w", err)
		}
		accrualInterval = d
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432"
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "solvestdb"
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	return &AppConfig{
		ServerPort:      serverPort,
		StorageDriver:   storageDriver,
		AccrualInterval: accrualInterval,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
	}, nil
}
