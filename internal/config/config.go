package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default configuration file paths
const (
	ConfigPathItems = "configs/items.json"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string

	// Store selects the player store backend: "postgres" or "memory".
	Store string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	ItemsPath string

	APIKey         string
	TrustedProxies []string

	DiscordToken string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("ENVIRONMENT", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Store:        getEnv("PLAYER_STORE", "postgres"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "adventurebot"),
		ItemsPath:    getEnv("ITEMS_CONFIG", ConfigPathItems),
		APIKey:       getEnv("API_KEY", ""),
		DiscordToken: getEnv("DISCORD_TOKEN", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			cfg.TrustedProxies = append(cfg.TrustedProxies, strings.TrimSpace(p))
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.Store != "postgres" && cfg.Store != "memory" {
		return nil, fmt.Errorf("invalid PLAYER_STORE value %q (want postgres or memory)", cfg.Store)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
