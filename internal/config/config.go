// Package config handles configuration loading for the account service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the account service.
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	JWTSecret      string
	JWTExpiry      time.Duration
	BcryptCost     int
	HashWorkers    int
	AllowedOrigins []string
	Port           string
	Environment    string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present. Missing required variables
// are returned as a single error so deployments fail fast.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	required := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &Config{
		DBHost:         required("DB_HOST"),
		DBPort:         required("DB_PORT"),
		DBUser:         required("DB_USER"),
		DBPassword:     required("DB_PASSWORD"),
		DBName:         required("DB_NAME"),
		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      required("JWT_SECRET"),
		JWTExpiry:      parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),
		BcryptCost:     parseInt(getEnv("BCRYPT_COST", "10"), 10),
		HashWorkers:    parseInt(getEnv("HASH_WORKERS", "4"), 4),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
