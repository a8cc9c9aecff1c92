package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by every subcommand. Values come from
// MADATA_* environment variables, optionally seeded from a .env file;
// command-line flags override them.
type Config struct {
	Root        string `envconfig:"ROOT" default:"ma-data/ma" validate:"required"`
	Out         string `envconfig:"OUT" default:"out" validate:"required"`
	PG          string `envconfig:"PG"`
	Workers     int    `envconfig:"WORKERS" default:"4" validate:"min=1,max=64"`
	MetricsFile string `envconfig:"METRICS_FILE"`
	Verbose     bool   `envconfig:"VERBOSE"`
}

// loadConfig reads envFile into the environment when it exists, without
// overriding variables already set, then processes MADATA_* variables.
func loadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := envconfig.Process("MADATA", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return &cfg, nil
}

var configValidator = validator.New()

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
