package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	RetryMaxRetries int
	RetryBaseDelay  time.Duration

	// EventJournalPath enables the JSON-lines event journal when set.
	EventJournalPath string

	// JWTSecret enables bearer authentication on /api/v1 when set.
	JWTSecret string
	JWTIssuer string

	RateLimit          string
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string

	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RETRY_MAX_RETRIES", 3)
	v.SetDefault("RETRY_BASE_DELAY", "100ms")
	v.SetDefault("EVENT_JOURNAL_PATH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "transaction-processor")
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      v.GetString("PGSQL_URL"),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:    strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		RetryMaxRetries:  v.GetInt("RETRY_MAX_RETRIES"),
		EventJournalPath: v.GetString("EVENT_JOURNAL_PATH"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		RateLimit:        v.GetString("RATE_LIMIT"),
		PosthogAPIKey:    v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:  v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %q", StoragePostgres)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q, expected %q or %q", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	if cfg.RetryMaxRetries < 0 {
		log.Printf("Warning: negative RETRY_MAX_RETRIES (%d). Retries disabled.\n", cfg.RetryMaxRetries)
		cfg.RetryMaxRetries = 0
	}
	cfg.RetryBaseDelay = durationOrDefault(v, "RETRY_BASE_DELAY", 100*time.Millisecond)
	cfg.ShutdownTimeout = durationOrDefault(v, "SHUTDOWN_TIMEOUT", 15*time.Second)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API authentication is disabled.")
	}
	if cfg.IsProduction && cfg.StorageDriver == StorageMemory {
		log.Println("Warning: in-memory storage in production loses all data on restart.")
	}

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
