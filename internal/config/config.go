// Package config loads the application configuration from the environment,
// optionally seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Game   GameConfig
	DB     DBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     int
	AdminKey string // bearer token for command endpoints; empty disables them
}

// GameConfig holds the simulation tunables.
type GameConfig struct {
	Seed            int64
	StartingCash    float64
	MonthlyExpenses float64
	WinThreshold    float64
	MonthsToWin     int
	Speed           float64
}

// DBConfig holds settings for the SQLite save database.
type DBConfig struct {
	Path string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvInt("BAKEHOUSE_PORT", 8080),
			AdminKey: os.Getenv("BAKEHOUSE_ADMIN_KEY"),
		},
		Game: GameConfig{
			Seed:            getenvInt64("BAKEHOUSE_SEED", 0),
			StartingCash:    getenvFloat("BAKEHOUSE_STARTING_CASH", 50000),
			MonthlyExpenses: getenvFloat("BAKEHOUSE_MONTHLY_EXPENSES", 3500),
			WinThreshold:    getenvFloat("BAKEHOUSE_WIN_THRESHOLD", 150000),
			MonthsToWin:     getenvInt("BAKEHOUSE_MONTHS_TO_WIN", 12),
			Speed:           getenvFloat("BAKEHOUSE_SPEED", 1),
		},
		DB: DBConfig{
			Path: getenvWithDefault("BAKEHOUSE_DB_PATH", "bakehouse.db"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that configuration fields are sane.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("BAKEHOUSE_PORT must be a valid port number")
	}

	if c.Game.StartingCash <= 0 {
		return errors.New("BAKEHOUSE_STARTING_CASH must be positive")
	}

	if c.Game.MonthlyExpenses < 0 {
		return errors.New("BAKEHOUSE_MONTHLY_EXPENSES must not be negative")
	}

	if c.Game.WinThreshold <= c.Game.StartingCash {
		return errors.New("BAKEHOUSE_WIN_THRESHOLD must exceed starting cash")
	}

	if c.Game.MonthsToWin <= 0 {
		return errors.New("BAKEHOUSE_MONTHS_TO_WIN must be positive")
	}

	if c.Game.Speed < 0 || c.Game.Speed > 1000 {
		return errors.New("BAKEHOUSE_SPEED must be between 0 and 1000")
	}

	if c.DB.Path == "" {
		return errors.New("BAKEHOUSE_DB_PATH must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
