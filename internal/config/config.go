// Package config holds the viewer settings read from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config describes how the viewer window is opened and which asset it shows
type Config struct {
	Asset   string `env:"GOROOM_ASSET" envDefault:"public/portfolio_room.glb"`
	Width   int    `env:"GOROOM_WIDTH" envDefault:"1400"`
	Height  int    `env:"GOROOM_HEIGHT" envDefault:"900"`
	FPS     int    `env:"GOROOM_FPS" envDefault:"60"`
	MSAA    bool   `env:"GOROOM_MSAA" envDefault:"true"`
	HighDPI bool   `env:"GOROOM_HIGHDPI" envDefault:"true"`
}

// Load parses the environment into a Config with defaults applied
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ErrNoAsset is returned when no asset path is configured
var ErrNoAsset = errors.New("asset path is empty")

// ValidateAsset checks only what headless commands need
func (c Config) ValidateAsset() error {
	if c.Asset == "" {
		return ErrNoAsset
	}
	return nil
}

// Validate rejects settings the viewer cannot start with
func (c Config) Validate() error {
	var errs []error
	if err := c.ValidateAsset(); err != nil {
		errs = append(errs, err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	return errors.Join(errs...)
}
