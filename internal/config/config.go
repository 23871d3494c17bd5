// Package config contains the loader and typed model for the optional
// .prthreads.yaml file and its PRTHREADS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/reviewkit/prthreads/internal/env"
)

// DefaultPath is the default location of the configuration file, relative to
// the working directory.
const DefaultPath = ".prthreads.yaml"

// Config holds the tool's settings. All fields are optional; zero values fall
// back to the defaults applied by Load.
type Config struct {
	// Remote is the git remote name used to resolve owner/repo.
	Remote string `yaml:"remote" env:"PRTHREADS_REMOTE"`
	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel" env:"PRTHREADS_LOG_LEVEL"`
	// Token, when set, is passed to gh via GH_TOKEN/GITHUB_TOKEN.
	Token string `yaml:"token" env:"PRTHREADS_TOKEN"`
	// EnvFiles lists .env files loaded before applying overrides, resolved
	// relative to the config file's directory.
	EnvFiles []string `yaml:"envFiles,omitempty"`
}

// Load reads the config file at path if it exists, loads any referenced env
// files, and applies PRTHREADS_* environment variable overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		Remote:   "origin",
		LogLevel: "info",
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Missing config file is fine, everything has a default.
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if len(cfg.EnvFiles) > 0 {
		vars, err := env.LoadEnvFiles(filepath.Dir(path), cfg.EnvFiles)
		if err != nil {
			return Config{}, err
		}
		if cfg.Token == "" {
			cfg.Token = firstNonEmpty(vars["PRTHREADS_TOKEN"], vars["GH_TOKEN"], vars["GITHUB_TOKEN"])
		}
	}

	if err := envparse.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment overrides: %w", err)
	}

	if cfg.Token == "" {
		cfg.Token = firstNonEmpty(os.Getenv("GH_TOKEN"), os.Getenv("GITHUB_TOKEN"))
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
