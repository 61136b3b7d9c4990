package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/pkg/iojson"
)

// validationIssue is one problem found in the configuration.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "toast config validate [options]",
				Description: "Validates the configuration file: toast settings, theme name and routing rules.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	issues := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	out := c.Root().Writer

	if cmd.format == "json" {
		if err := iojson.WriteIndent(out, struct {
			Valid  bool              `json:"valid"`
			Path   string            `json:"path"`
			Errors []validationIssue `json:"errors,omitempty"`
		}{
			Valid:  len(issues) == 0,
			Path:   cmd.flags.ConfigPath,
			Errors: issues,
		}); err != nil {
			return err
		}
	} else {
		writeIssues(out, issues, isTerminal(out))
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// collectIssues flattens a validation error into one issue per field.
func collectIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}

func writeIssues(w io.Writer, issues []validationIssue, color bool) {
	paint := func(s string, c lipgloss.Style) string {
		if !color {
			return s
		}
		return c.Render(s)
	}
	okStyle := lipgloss.NewStyle().Foreground(styles.ColorSuccess)
	errStyle := lipgloss.NewStyle().Foreground(styles.ColorError)

	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, paint("Configuration is valid", okStyle))
		return
	}

	for _, is := range issues {
		if is.Field == "" {
			_, _ = fmt.Fprintf(w, "%s %s\n", paint("✗", errStyle), is.Message)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", paint("✗", errStyle), is.Field, is.Message)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, paint(fmt.Sprintf("%d error(s) found", len(issues)), errStyle))
}
