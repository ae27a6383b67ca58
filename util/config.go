package util

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config struct.
// All values are read once at process start. There is no dynamic
// configuration: billing rates live on the admin record and are updated
// through the admin profile endpoint instead.
type Config struct {
	// Postgres connection string
	DBConn string
	// Secret key used for signing JWT access tokens
	SecretKey string
	// Port the HTTP server listens on
	Port string
	// Root directory of the static-served uploads tree
	UploadDir string
	// Access token lifetime
	TokenExpiration time.Duration
}

// Load config from .env. Missing file is not fatal: values may come from
// the process environment directly (the usual case in containers).
func LoadConfig(path string) *Config {
	if err := godotenv.Load(path); err != nil {
		LOGGER.Warn("no .env file loaded, reading config from environment", "path", path, "error", err)
	}

	config := &Config{
		DBConn:          os.Getenv("DB_CONN"),
		SecretKey:       os.Getenv("SECRET_KEY"),
		Port:            os.Getenv("PORT"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
		TokenExpiration: time.Hour,
	}

	if config.Port == "" {
		config.Port = "8080"
	}

	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}

	// TOKEN_EXPIRATION is in minutes
	if raw := os.Getenv("TOKEN_EXPIRATION"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			config.TokenExpiration = time.Duration(minutes) * time.Minute
		} else {
			LOGGER.Warn("invalid TOKEN_EXPIRATION value, keeping default", "value", raw)
		}
	}

	return config
}
