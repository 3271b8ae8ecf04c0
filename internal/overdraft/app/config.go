package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Required: issuer claim for partner tokens

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./overdraft.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	AccessTokenTTL       time.Duration // Partner token lifetime (default: 1h)
	SessionTTL           time.Duration // Back-office session lifetime (default: 24h)

	// Seed data for an empty database.
	AdminUsername          string
	AdminPassword          string
	AdminOperationPassword string
	SeedAppClientID        string
	SeedAppSecret          string
	SeedAppName            string
	SecondAppClientID      string
	SecondAppSecret        string
	SecondAppName          string
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("OVERDRAFT_ISSUER", "overdraft-service"),
		DatabaseFile:         getEnvOrDefault("OVERDRAFT_DATABASE_FILE", "overdraft.db"),
		PepperFile:           getEnvOrDefault("OVERDRAFT_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 1*time.Hour),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),

		AdminUsername:          getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:          getEnvOrDefault("ADMIN_PASSWORD", "admin123"),
		AdminOperationPassword: getEnvOrDefault("ADMIN_OPERATION_PASSWORD", "12345678"),
		SeedAppClientID:        getEnvOrDefault("SEED_APP_CLIENT_ID", "bank_app_001"),
		SeedAppSecret:          getEnvOrDefault("SEED_APP_SECRET", "secret_key_123"),
		SeedAppName:            getEnvOrDefault("SEED_APP_NAME", "Banking App"),
		SecondAppClientID:      getEnvOrDefault("SECOND_APP_CLIENT_ID", "mobile_app_002"),
		SecondAppSecret:        getEnvOrDefault("SECOND_APP_SECRET", "secret_key_123"),
		SecondAppName:          getEnvOrDefault("SECOND_APP_NAME", "Mobile App"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
