package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Engine EngineConfig
	Logger LoggerConfig
}

// EngineConfig holds matching engine configuration
type EngineConfig struct {
	TradeHistorySize int
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level string // DEBUG, INFO, WARN, ERROR
}

// Load loads configuration from .env file (if exists) and environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Engine: EngineConfig{
			TradeHistorySize: getEnvInt("TRADE_HISTORY_SIZE", 1000),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Engine.TradeHistorySize < 1 {
		return fmt.Errorf("TRADE_HISTORY_SIZE must be > 0")
	}

	validLevels := map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR")
	}

	return nil
}

// Helper functions to read environment variables with defaults

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
