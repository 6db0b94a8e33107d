// Package config loads the process configuration from the environment once
// at startup. Components receive the resulting struct; nothing reads the
// environment ad hoc afterwards.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every recognized environment input.
//
// OPENROUTER_API_KEY and FAL_KEY are the provider credentials; each tool
// reports a config error when its credential is missing, so the server can
// start with a partial set. TOOLS_SECRET enables the bearer gate on the
// /tools routes when non-empty.
type Config struct {
	Port          int    `env:"PORT"                envDefault:"8787"`
	TextAPIKey    string `env:"OPENROUTER_API_KEY"`
	TextBaseURL   string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	TextModel     string `env:"TEXT_MODEL"          envDefault:"openai/gpt-4o-mini"`
	ImageAPIKey   string `env:"FAL_KEY"`
	ToolsSecret   string `env:"TOOLS_SECRET"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	OutputDir     string `env:"OUTPUT_DIR"          envDefault:"generated_images"`
}

// Load parses the environment into a Config. PublicBaseURL falls back to the
// local listen address when unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
