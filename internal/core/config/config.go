// Package config handles configuration loading and validation for toast.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/toast/internal/core/notify"
)

// Config holds the application configuration.
type Config struct {
	Toast ToastConfig   `yaml:"toast"`
	Theme string        `yaml:"theme"`
	Rules []notify.Rule `yaml:"rules"`
}

// ToastConfig controls toast lifetime and presentation.
type ToastConfig struct {
	// DefaultTTL is the auto-dismiss duration for toasts created without an
	// explicit one. Zero keeps them until dismissed.
	DefaultTTL time.Duration `yaml:"default_ttl"`
	// MaxActive caps the number of active toasts; the oldest is dismissed
	// when exceeded. Zero means unlimited.
	MaxActive int  `yaml:"max_active"`
	Width     int  `yaml:"width"`
	Markdown  bool `yaml:"markdown"`

	FrameInterval time.Duration `yaml:"frame_interval"`
	EnterFrames   int           `yaml:"enter_frames"`
	ExitFrames    int           `yaml:"exit_frames"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Toast: ToastConfig{
			DefaultTTL:    5 * time.Second,
			MaxActive:     5,
			Width:         50,
			FrameInterval: 40 * time.Millisecond,
			EnterFrames:   6,
			ExitFrames:    6,
		},
		Theme: "tokyo-night",
	}
}

// Load reads and validates configuration from the given path. If configPath
// is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses configuration from the given path and fills in defaults
// without validating it.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
			// not found is fine, using defaults
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset presentation options.
// DefaultTTL and MaxActive are left alone: zero is meaningful for both.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Toast.Width == 0 {
		c.Toast.Width = defaults.Toast.Width
	}
	if c.Toast.FrameInterval == 0 {
		c.Toast.FrameInterval = defaults.Toast.FrameInterval
	}
	if c.Toast.EnterFrames == 0 {
		c.Toast.EnterFrames = defaults.Toast.EnterFrames
	}
	if c.Toast.ExitFrames == 0 {
		c.Toast.ExitFrames = defaults.Toast.ExitFrames
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}
