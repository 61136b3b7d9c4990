package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
	"github.com/colonyops/toast/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *toast.App
	build tui.BuildInfo

	demo bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *toast.App, build tui.BuildInfo) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
		build: build,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "demo",
			Usage:       "start with one toast of each kind",
			Sources:     cli.EnvVars("TOAST_DEMO"),
			Destination: &cmd.demo,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive toast playground",
		UsageText: "toast tui [--demo]",
		Description: `Opens a placeholder page with the toast stack in the lower-right corner.

Press s, e, w or i to compose a toast of that kind, d to publish a burst of
topic events through the configured rules, and x / X / tab / y to dismiss,
dismiss all, cycle focus and copy.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	return cmd.runProgram(ctx, nil)
}

// runProgram runs the TUI until the user quits, enqueueing initial once it
// starts.
func (cmd *TuiCmd) runProgram(ctx context.Context, initial []notify.Request) error {
	if err := cmd.flags.requireConfig(); err != nil {
		return err
	}

	if sink := cmd.flags.LogSink; sink != nil {
		sink.Hold()
		defer func() {
			if err := sink.Release(); err != nil {
				log.Error().Err(err).Msg("failed to flush held log output")
			}
		}()
	}

	m := tui.New(tui.Options{
		Store:   cmd.app.Store,
		Router:  cmd.app.Router,
		Config:  cmd.app.Config,
		Build:   cmd.build,
		Demo:    cmd.demo,
		Initial: initial,
	})
	defer m.Toasts().Unmount()

	log.Info().Bool("demo", cmd.demo).Int("initial", len(initial)).Msg("starting tui")

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
