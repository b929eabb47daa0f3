// Package config provides environment variable overrides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds PLAYDECK_* overrides. Empty values leave defaults in place.
type Env struct {
	ConfigPath string `env:"PLAYDECK_CONFIG"`
	DBPath     string `env:"PLAYDECK_DB"`
	Scenarios  string `env:"PLAYDECK_SCENARIOS"`
	Words      string `env:"PLAYDECK_WORDS"`
	Muted      *bool  `env:"PLAYDECK_MUTED"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ConfigPathOr returns the overridden config path or def.
func (e Env) ConfigPathOr(def string) string {
	if e.ConfigPath != "" {
		return e.ConfigPath
	}
	return def
}

// DBPathOr returns the overridden database path or def.
func (e Env) DBPathOr(def string) string {
	if e.DBPath != "" {
		return e.DBPath
	}
	return def
}
