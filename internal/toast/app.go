// Package toast wires the notification store, router and configuration into
// a single App that commands and the TUI consume.
package toast

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/notify"
)

// App is the central entry point for toast operations. Commands and the TUI
// consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	Store  *notify.Store
	Router *notify.Router
}

// NewApp builds the store and router described by cfg. Extra store options
// are applied after the configured ones, so tests can swap the scheduler or
// id generator.
func NewApp(cfg *config.Config, logger zerolog.Logger, opts ...notify.Option) (*App, error) {
	storeOpts := append([]notify.Option{
		notify.WithDefaultTTL(cfg.Toast.DefaultTTL),
		notify.WithMaxActive(cfg.Toast.MaxActive),
		notify.WithLogger(logger.With().Str("cmp", "store").Logger()),
	}, opts...)
	store := notify.NewStore(storeOpts...)

	router, err := notify.NewRouter(store, cfg.Rules, logger.With().Str("cmp", "router").Logger())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build router: %w", err)
	}

	return &App{
		Config: cfg,
		Store:  store,
		Router: router,
	}, nil
}

// NewDefaultApp builds an App from cfg using the global logger.
func NewDefaultApp(cfg *config.Config) (*App, error) {
	return NewApp(cfg, logging.Component("app"))
}

// Close releases the store's timers and listeners.
func (a *App) Close() {
	if a != nil && a.Store != nil {
		a.Store.Close()
	}
}
