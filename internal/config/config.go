package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config captures environment driven configuration values for the planner service.
type Config struct {
	HTTPPort   int    `env:"PLANNER_HTTP_PORT" envDefault:"3000"`
	SQLitePath string `env:"PLANNER_SQLITE_PATH" envDefault:"planner.db"`
	AdminKey   string `env:"PLANNER_ADMIN_KEY,required,notEmpty"`
	BcryptCost int    `env:"PLANNER_BCRYPT_COST" envDefault:"10"`
}

// Load parses configuration values from the current process environment.
//
// The admin key has no default on purpose: the service refuses to start with
// an unset administrative secret.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("invalid PLANNER_HTTP_PORT: %d", cfg.HTTPPort)
	}
	if cfg.SQLitePath == "" {
		return Config{}, fmt.Errorf("PLANNER_SQLITE_PATH must not be empty")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("invalid PLANNER_BCRYPT_COST: %d", cfg.BcryptCost)
	}

	return cfg, nil
}
