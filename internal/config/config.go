package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the mock storefront API
type Config struct {
	// Listen address (host:port)
	Addr string

	// Secret used to sign bearer tokens. Auto-generated when unset, which
	// means tokens don't survive a restart; set SHOPMOCK_JWT_SECRET to pin it.
	JWTSecret string

	// Optional YAML file with initial accounts and catalog entries
	SeedFile string

	// Logging Configuration
	Logging LoggingConfig
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	addr := os.Getenv("SHOPMOCK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSecret := os.Getenv("SHOPMOCK_JWT_SECRET")
	if jwtSecret == "" {
		secretBytes := make([]byte, 32)
		if _, err := rand.Read(secretBytes); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		jwtSecret = hex.EncodeToString(secretBytes)
	}

	// Logging configuration - console output suits a dev tool
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		Addr:      addr,
		JWTSecret: jwtSecret,
		SeedFile:  os.Getenv("SHOPMOCK_SEED_FILE"),
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
