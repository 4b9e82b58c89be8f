// Package config loads the service configuration from the environment. A
// .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries need. GCS and Notion settings are
// optional; commands that touch the store refuse to run without a BigQuery
// project, export and notion-sync additionally without their own settings.
type Config struct {
	TelegramToken string
	WebhookURL    string
	Port          string

	ProjectID string
	DatasetID string

	GeminiModel string
	MaxHistory  int

	GCSBucket        string
	NotionToken      string
	NotionDatabaseID string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	maxHistory, err := getIntEnv("MAX_HISTORY", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		Port:             getEnv("PORT", "8443"),
		ProjectID:        os.Getenv("GOOGLE_CLOUD_PROJECT"),
		DatasetID:        getEnv("BQ_DATASET", "granabot"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		MaxHistory:       maxHistory,
		GCSBucket:        os.Getenv("GCS_BUCKET"),
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
	}

	return cfg, nil
}

// RequireTelegram validates the settings the bot and webhook binaries need.
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	return nil
}

// RequireBigQuery validates the settings the store-backed commands need.
func (c *Config) RequireBigQuery() error {
	if c.ProjectID == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
