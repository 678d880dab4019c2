package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port             string
	CORSAllowOrigins string // comma separated, "*" allows any origin

	// Database configuration
	DBType            string // postgres, mysql, sqlite, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Session token configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Credential configuration
	BcryptCost  int
	EmailUnique bool

	LogLevel string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first if present; real
// environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		CORSAllowOrigins:  getEnv("CORS_ALLOW_ORIGINS", "*"),
		DBType:            getEnv("DB_TYPE", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getEnvAsDuration("JWT_TTL", 7*24*time.Hour),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 10),
		EmailUnique:       getEnvAsBool("EMAIL_UNIQUE", true),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value.
// "0" disables the duration.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if valueStr == "0" {
		return 0
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
