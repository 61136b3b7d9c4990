package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toast/internal/core/styles"
)

const minToastWidth = 20

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("toast.default_ttl", c.Toast.DefaultTTL, nonNegative),
		criterio.Run("toast.max_active", c.Toast.MaxActive, func(n int) error {
			if n < 0 {
				return fmt.Errorf("must not be negative")
			}
			return nil
		}),
		criterio.Run("toast.width", c.Toast.Width, func(w int) error {
			if w < minToastWidth {
				return fmt.Errorf("must be at least %d", minToastWidth)
			}
			return nil
		}),
		criterio.Run("toast.frame_interval", c.Toast.FrameInterval, positive),
		criterio.Run("toast.enter_frames", c.Toast.EnterFrames, atLeastOne),
		criterio.Run("toast.exit_frames", c.Toast.ExitFrames, atLeastOne),
		criterio.Run("theme", c.Theme, knownTheme),
		c.validateRules(),
	)
}

// ValidateDeep runs Validate and additionally checks that configPath, when
// given, is a readable file.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		c.Validate(),
		validateConfigFile(configPath),
	)
}

func (c *Config) validateRules() error {
	var errs criterio.FieldErrorsBuilder
	for i, rule := range c.Rules {
		if err := rule.Validate(); err != nil {
			errs = errs.Append(fmt.Sprintf("rules[%d]", i), err)
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func nonNegative(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func atLeastOne(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q, available: %v", name, styles.ThemeNames())
	}
	return nil
}
