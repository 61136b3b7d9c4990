package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/pkg/utils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is read in the Before hook and available to all commands, even
	// when invalid; ConfigErr holds the validation failure.
	Config    *config.Config
	ConfigErr error

	// LogSink is the terminal log writer when logging to stderr. The TUI
	// holds it while the program owns the screen.
	LogSink *utils.HoldWriter
}

// requireConfig returns the validation error for commands that cannot run
// with an invalid configuration.
func (f *Flags) requireConfig() error {
	if f.ConfigErr != nil {
		return fmt.Errorf("invalid config (run 'toast config validate'): %w", f.ConfigErr)
	}
	return nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toast", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/toast/toast.log
// On Linux: $XDG_STATE_HOME/toast/toast.log (defaults to ~/.local/state/toast/toast.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "toast", "toast.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "toast", "toast.log")
	}

	return filepath.Join(home, ".local", "state", "toast", "toast.log")
}
