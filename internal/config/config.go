package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full application configuration, loaded once at startup
type Config struct {
	Stage    string
	LogLevel string
	Port     string
	Database Database
	Engine   Engine
}

// Database holds PostgreSQL connection settings
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Engine holds tax calculation policy settings. These are injected into the
// engine at construction; there is no runtime settings lookup.
type Engine struct {
	RoundingPlaces    int32         // decimal places in presented amounts
	CompoundByDefault bool          // exclusive rates without based_on compound on the running total
	GroupCacheTTL     time.Duration // TTL for cached group-resolution lookups
}

// Load reads configuration from the environment with hardcoded fallbacks
func Load() Config {
	return Config{
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Engine: Engine{
			RoundingPlaces:    int32(getEnvInt("TAX_ROUNDING_PLACES", 2)),
			CompoundByDefault: getEnvBool("TAX_COMPOUND_DEFAULT", true),
			GroupCacheTTL:     time.Duration(getEnvInt("TAX_GROUP_CACHE_TTL_SECONDS", 30)) * time.Second,
		},
	}
}

// DSN builds the PostgreSQL connection string
func (d Database) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}
