package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir        string
	UploadDir      string
	ThumbnailDir   string
	DatabasePath   string
	FontPath       string
	Port           string
	MaxUploadBytes int64
	LogLevel       string
	Environment    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config := &Config{}

	config.DataDir = getEnvWithDefault("DATA_DIR", "./data")
	config.UploadDir = filepath.Join(config.DataDir, "uploads")
	config.ThumbnailDir = filepath.Join(config.UploadDir, "thumbs")
	config.DatabasePath = getEnvWithDefault("DATABASE_PATH", filepath.Join(config.DataDir, "photoshoot.db"))

	// Optional Unicode TTF for PDF export. Unset falls back to a built-in
	// Latin-1 font.
	config.FontPath = os.Getenv("PDF_FONT_PATH")
	if config.FontPath != "" {
		if _, err := os.Stat(config.FontPath); err != nil {
			return nil, fmt.Errorf("PDF_FONT_PATH %s is not readable: %v", config.FontPath, err)
		}
	}

	config.Port = getEnvWithDefault("PORT", "8080")
	config.LogLevel = getEnvWithDefault("LOG_LEVEL", "INFO")
	config.Environment = getEnvWithDefault("ENVIRONMENT", "development")

	maxUpload, err := strconv.ParseInt(getEnvWithDefault("MAX_UPLOAD_BYTES", "16777216"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %v", err)
	}
	config.MaxUploadBytes = maxUpload

	return config, nil
}

// EnsureDirs creates the storage-root layout: the data directory, uploads/
// for originals and uploads/thumbs/ for thumbnails.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.UploadDir, c.ThumbnailDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
