// Package config loads the optional pivot.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-pivot/pivot/pkg/animation"
	"github.com/go-pivot/pivot/pkg/widgets"
)

// Config represents the optional pivot.yaml configuration.
type Config struct {
	Rotation   RotationConfig   `yaml:"rotation"`
	Transition TransitionConfig `yaml:"transition"`
}

// RotationConfig contains orientation animation settings.
type RotationConfig struct {
	// Speed is the angular velocity in degrees per second.
	// Zero means unset.
	Speed int `yaml:"speed,omitempty"`
}

// TransitionConfig contains content cross-fade settings.
type TransitionConfig struct {
	// DurationMS is the cross-fade length in milliseconds.
	// Zero means unset.
	DurationMS int `yaml:"duration_ms,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	RotationSpeed int
	FadeDuration  time.Duration
}

// Default returns the resolved defaults.
func Default() *Resolved {
	return &Resolved{
		RotationSpeed: animation.DefaultRotationSpeed,
		FadeDuration:  widgets.DefaultFadeDuration,
	}
}

// LoadOptional reads pivot.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "pivot.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read pivot.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pivot.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads pivot.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve validates the configuration and applies defaults to unset fields.
func (c *Config) Resolve() (*Resolved, error) {
	out := Default()

	if c.Rotation.Speed < 0 {
		return nil, fmt.Errorf("rotation.speed must be positive (got %d)", c.Rotation.Speed)
	}
	if c.Rotation.Speed > 0 {
		out.RotationSpeed = c.Rotation.Speed
	}

	if c.Transition.DurationMS < 0 {
		return nil, fmt.Errorf("transition.duration_ms must be positive (got %d)", c.Transition.DurationMS)
	}
	if c.Transition.DurationMS > 0 {
		out.FadeDuration = time.Duration(c.Transition.DurationMS) * time.Millisecond
	}

	return out, nil
}
