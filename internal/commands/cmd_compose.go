package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
)

// composeValues holds the answers collected by the compose form.
type composeValues struct {
	Kind       string
	Title      string
	Message    string
	Persistent bool
}

// request converts the answers to a store request.
func (v composeValues) request(ttl time.Duration) (notify.Request, error) {
	kind, err := notify.ParseKind(v.Kind)
	if err != nil {
		return notify.Request{}, err
	}
	if v.Persistent {
		ttl = 0
	}

	req := notify.Request{
		Kind:        kind,
		Title:       strings.TrimSpace(v.Title),
		Message:     strings.TrimSpace(v.Message),
		AutoDismiss: ttl,
	}
	if err := req.Validate(); err != nil {
		return notify.Request{}, err
	}
	return req, nil
}

type ComposeCmd struct {
	flags *Flags
	tui   *TuiCmd

	// form fills in values interactively; replaced in tests.
	form func(*composeValues) error
}

// NewComposeCmd creates a new compose command
func NewComposeCmd(flags *Flags, tui *TuiCmd) *ComposeCmd {
	return &ComposeCmd{flags: flags, tui: tui, form: runComposeForm}
}

// Register adds the compose command to the application
func (cmd *ComposeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "compose",
		Usage:     "Build a toast with a form, then show it in the TUI",
		UsageText: "toast compose",
		Description: `Asks for the kind, title and message of a toast, then opens the TUI with
that toast on screen.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ComposeCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.requireConfig(); err != nil {
		return err
	}

	values := composeValues{Kind: string(notify.KindInfo)}
	if err := cmd.form(&values); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("form: %w", err)
	}

	req, err := values.request(cmd.flags.Config.Toast.DefaultTTL)
	if err != nil {
		return err
	}

	return cmd.tui.runProgram(ctx, []notify.Request{req})
}

func runComposeForm(v *composeValues) error {
	options := make([]huh.Option[string], 0, len(notify.Kinds()))
	for _, k := range notify.Kinds() {
		options = append(options, huh.NewOption(string(k), string(k)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Kind").
				Options(options...).
				Value(&v.Kind),
			huh.NewInput().
				Title("Title").
				Description("Short text shown in bold").
				Validate(validateTitle).
				Value(&v.Title),
			huh.NewText().
				Title("Message").
				Description("Optional details").
				Value(&v.Message),
			huh.NewConfirm().
				Title("Keep until dismissed?").
				Value(&v.Persistent),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}
