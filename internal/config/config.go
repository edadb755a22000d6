package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	OTP      OTPConfig
	Registry RegistryConfig
	Redis    RedisConfig
	Mailer   MailerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// StorageConfig points at the directory holding the two JSON documents
// (users.json and posts.json).
type StorageConfig struct {
	DataDir string
}

type OTPConfig struct {
	TTL           time.Duration // code lifetime
	SweepInterval time.Duration // 0 disables the background sweep
}

// RegistryConfig selects the backing for the OTP and session registries.
type RegistryConfig struct {
	Backend string // "memory" or "redis"
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MailerConfig struct {
	Provider string // "smtp" or "console"
	SMTPHost string
	SMTPPort string
	From     string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Microblog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		OTP: OTPConfig{
			TTL:           time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,
			SweepInterval: time.Duration(getEnvInt("OTP_SWEEP_INTERVAL_MINUTES", 0)) * time.Minute,
		},
		Registry: RegistryConfig{
			Backend: getEnv("REGISTRY_BACKEND", "memory"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Mailer: MailerConfig{
			Provider: getEnv("MAILER", "console"),
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
			From:     getEnv("SMTP_FROM", "noreply@microblog.dev"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid combinations.
func (c *Config) Validate() error {
	switch c.Registry.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("REGISTRY_BACKEND must be memory or redis, got %q", c.Registry.Backend)
	}

	switch c.Mailer.Provider {
	case "smtp", "console":
	default:
		return fmt.Errorf("MAILER must be smtp or console, got %q", c.Mailer.Provider)
	}

	if c.OTP.TTL <= 0 {
		return fmt.Errorf("OTP_TTL_MINUTES must be positive")
	}

	if c.App.Environment == "production" && c.Mailer.Provider == "console" {
		// Codes end up in the logs instead of inboxes. Allowed for
		// diagnostics, but worth shouting about.
		fmt.Println("WARNING: console mailer in production - OTP codes will be logged, not emailed")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
