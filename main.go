package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/commands"
	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/internal/toast"
	"github.com/colonyops/toast/internal/tui"
	"github.com/colonyops/toast/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, these fall back to
	// runtime/debug.BuildInfo.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() tui.BuildInfo {
	b := tui.BuildInfo{Version: version, Commit: commit, Date: date}
	if b.Version != "dev" {
		return b
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		b.Version = mv
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value
		case "vcs.time":
			b.Date = s.Value
		}
	}
	return b
}

func build() string {
	b := buildInfo()
	short := b.Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s) %s", b.Version, short, b.Date)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCloser func()
		toastApp  = &toast.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "toast",
		Usage:     "Transient notifications for terminal apps",
		UsageText: "toast [global options] command [command options]",
		Description: `Toast shows short-lived notifications stacked in the corner of a terminal
UI. Notifications expire on their own or are dismissed from the keyboard.

Run 'toast' with no arguments to open the interactive playground.
Run 'toast send' to enqueue notifications and follow them from a script.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TOAST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       `path to log file ("-" for stderr)`,
				Sources:     cli.EnvVars("TOAST_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TOAST_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var fallback io.Writer
			logFile := flags.LogFile
			if logFile == "-" {
				logFile = ""
				flags.LogSink = utils.NewHoldWriter(os.Stderr)
				fallback = flags.LogSink
			}

			logger, closer, err := logging.New(flags.LogLevel, logFile, fallback)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Read(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// An invalid config still lets `config validate` report it; every
			// other command checks ConfigErr before running.
			if flags.ConfigErr = cfg.Validate(); flags.ConfigErr != nil {
				log.Warn().Err(flags.ConfigErr).Str("path", flags.ConfigPath).Msg("invalid config")
				return ctx, nil
			}

			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			built, err := toast.NewApp(cfg, log.Logger)
			if err != nil {
				return ctx, fmt.Errorf("build app: %w", err)
			}
			*toastApp = *built

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			toastApp.Close()

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, toastApp, buildInfo())

	app = tuiCmd.Register(app)
	app = commands.NewSendCmd(flags, toastApp).Register(app)
	app = commands.NewComposeCmd(flags, tuiCmd).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'toast --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
