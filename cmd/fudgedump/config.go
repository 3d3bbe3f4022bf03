package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds fudgedump settings, read from a TOML file.
type Config struct {
	Color     string `toml:"color"`
	TextWidth int    `toml:"text_width"`
	MaxDepth  int    `toml:"max_depth"`
	Preview   int    `toml:"preview_bytes"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Color:     "auto",
		TextWidth: 1,
		MaxDepth:  16,
		Preview:   16,
	}
}

// LoadConfig reads path over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := loadToml(path, &cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Color) == "" {
		cfg.Color = "auto"
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// ValidateConfig checks every setting.
func ValidateConfig(cfg Config) error {
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", cfg.Color)
	}
	switch cfg.TextWidth {
	case 1, 2, 4:
	default:
		return fmt.Errorf("text_width must be 1, 2 or 4, got %d", cfg.TextWidth)
	}
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.Preview < 0 {
		return fmt.Errorf("preview_bytes must not be negative, got %d", cfg.Preview)
	}
	return nil
}
