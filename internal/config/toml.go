// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play  PlayConfig  `toml:"play"`
	Stats StatsConfig `toml:"stats"`
}

// PlayConfig maps game settings.
type PlayConfig struct {
	Difficulty   *string `toml:"difficulty"`
	Muted        *bool   `toml:"muted"`
	Scenarios    *string `toml:"scenarios"`
	Words        *string `toml:"words"`
	LabelTimeout *int    `toml:"label-timeout"`
	PoolWinScore *int    `toml:"pool-win-score"`
}

// StatsConfig maps stats report settings.
type StatsConfig struct {
	Last        *int `toml:"last"`
	CurveWindow *int `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Template is the commented config written by "playdeck config".
const Template = `# playdeck configuration

[play]
# difficulty = "all"        # easy, medium, hard or all
# muted = false
# scenarios = ""            # JSON or "export const gameConfig = ..." file
# words = ""                # hangman word pack, one [Level] per section
# label-timeout = 120       # seconds per labelling scenario
# pool-win-score = 10

[stats]
# last = 0                  # only the most recent N rounds
# curve-window = 5
`

// WriteTemplate creates path with Template unless it already exists.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
