package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	LogMode      string
	MongoURI     string
	MongoDB      string
	SpecsAPIBase string

	AdminJWTSecret string
	AdminJWTIssuer string
	AdminJWTTTL    time.Duration

	// Throttling between external API calls during a sync run.
	PhoneDelay time.Duration
	BrandDelay time.Duration
}

// LoadConfig reads configuration from the environment, loading a local
// .env first when one exists (ignored in deployed environments).
func LoadConfig() Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("could not load .env: %v", err)
		}
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		LogMode:      getEnv("LOG_MODE", "dev"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "phoneflip"),
		SpecsAPIBase: getEnv("SPECS_API_BASE", "http://localhost:9000"),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", "dev-secret-change-me"),
		AdminJWTIssuer: getEnv("ADMIN_JWT_ISSUER", "phoneflip"),
		AdminJWTTTL:    getDuration("ADMIN_JWT_TTL", 24*time.Hour),

		PhoneDelay: getDuration("SYNC_PHONE_DELAY", 300*time.Millisecond),
		BrandDelay: getDuration("SYNC_BRAND_DELAY", 1500*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getDuration accepts either a Go duration string ("300ms") or a plain
// number of milliseconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
