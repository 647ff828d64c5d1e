// Package config loads front-end preferences. The engine never reads
// these; they shape presentation only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds display and pacing preferences for interactive play.
type Config struct {
	TextSpeedMS  int     `yaml:"text_speed_ms"`
	AutoAdvance  bool    `yaml:"auto_advance"`
	MasterVolume float64 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
	ShowCues     bool    `yaml:"show_cues"`
	Language     string  `yaml:"language"`
}

// Default returns the stock preferences used when no file exists.
func Default() Config {
	return Config{
		TextSpeedMS:  25,
		AutoAdvance:  true,
		MasterVolume: 0.7,
		Language:     "en",
	}
}

// Load reads preferences from path, falling back to defaults when the
// file does not exist. A present-but-invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TextSpeedMS < 0 {
		return fmt.Errorf("text_speed_ms must be non-negative, got %d", c.TextSpeedMS)
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("master_volume must be within [0, 1], got %g", c.MasterVolume)
	}
	if c.Language == "" {
		return errors.New("language is required")
	}
	return nil
}
