package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	AdminToken        string
	StorageURL        string
	StorageBucket     string
	StorageServiceKey string
	AppEnv            string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	adminToken, exists := os.LookupEnv("ADMIN_TOKEN")
	if !exists || adminToken == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN is required")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DB_URL", ""),
		AdminToken:        adminToken,
		StorageURL:        getEnv("STORAGE_URL", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", ""),
		StorageServiceKey: getEnv("STORAGE_SERVICE_KEY", ""),
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
