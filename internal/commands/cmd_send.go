package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/toast"
	"github.com/colonyops/toast/pkg/iojson"
)

// sendInput is one notification read from --file.
type sendInput struct {
	Topic   string `json:"topic"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
	// TTL is a Go duration string; empty uses the configured default and
	// "0s" makes the notification persistent.
	TTL string `json:"ttl"`
}

type SendCmd struct {
	flags *Flags
	app   *toast.App

	kind    string
	title   string
	message string
	topic   string
	ttl     time.Duration
	asJSON  bool
	noWait  bool
	timeout time.Duration
	file    iojson.FileReader[[]sendInput]
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags, app *toast.App) *SendCmd {
	return &SendCmd{flags: flags, app: app}
}

// Register adds the send command to the application
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Enqueue notifications and follow them until they are dismissed",
		UsageText: "toast send [options]",
		Description: `Enqueues one notification from flags and/or a batch from --file, then prints
a line for every notification added or removed until none are left.

Notifications with a --topic pass through the configured rules, which may
mute them or override their kind and duration.

Persistent notifications (--ttl 0s) keep the command running until it is
interrupted or --timeout expires; use --no-wait to return immediately.

Examples:
  toast send --kind success --title "Build passed" --ttl 3s
  toast send --topic deploy/prod --title "Deploy started"
  echo '[{"kind":"error","title":"Disk full","ttl":"2s"}]' | toast send -f -`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "notification kind (success, error, warning, info)",
				Value:       string(notify.KindInfo),
				Destination: &cmd.kind,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "notification title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "optional longer message",
				Destination: &cmd.message,
			},
			&cli.StringFlag{
				Name:        "topic",
				Usage:       "route the notification through the rules for this topic",
				Destination: &cmd.topic,
			},
			&cli.DurationFlag{
				Name:        "ttl",
				Usage:       "auto-dismiss after this long (0s for persistent; defaults to toast.default_ttl)",
				Destination: &cmd.ttl,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print one JSON object per change",
				Destination: &cmd.asJSON,
			},
			&cli.BoolFlag{
				Name:        "no-wait",
				Usage:       "return after enqueueing instead of following",
				Destination: &cmd.noWait,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "stop following after this long (0 waits until empty)",
				Destination: &cmd.timeout,
			},
			cmd.file.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.requireConfig(); err != nil {
		return err
	}

	events, err := cmd.events(c.IsSet("ttl"))
	if err != nil {
		return err
	}

	out := c.Root().Writer
	f := newFollower(out, cmd.asJSON, isTerminal(out))
	unsubscribe := cmd.app.Store.Subscribe(f.observe)
	defer unsubscribe()

	ids, err := routeAll(ctx, cmd.app.Router, events)
	if err != nil {
		return err
	}
	log.Debug().Int("events", len(events)).Int("enqueued", len(ids)).Msg("send complete")

	if len(ids) == 0 || cmd.noWait {
		return nil
	}
	f.arm(ids)

	if cmd.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.timeout)
		defer cancel()
	}

	select {
	case <-f.Done():
		return nil
	case <-ctx.Done():
		log.Debug().Err(ctx.Err()).Int("active", cmd.app.Store.Len()).Msg("stopped following")
		return nil
	}
}

// events collects the notifications to send from flags and --file.
func (cmd *SendCmd) events(ttlSet bool) ([]notify.Event, error) {
	defaultTTL := cmd.app.Config.Toast.DefaultTTL

	var events []notify.Event

	if cmd.title != "" {
		kind, err := notify.ParseKind(cmd.kind)
		if err != nil {
			return nil, err
		}
		ttl := defaultTTL
		if ttlSet {
			ttl = cmd.ttl
		}
		events = append(events, notify.Event{
			Topic:       cmd.topic,
			Kind:        kind,
			Title:       cmd.title,
			Message:     cmd.message,
			AutoDismiss: ttl,
		})
	}

	if cmd.file.Provided() {
		inputs, err := cmd.file.Read()
		if err != nil {
			return nil, fmt.Errorf("read --file: %w", err)
		}
		for i, in := range inputs {
			ev, err := in.event(defaultTTL)
			if err != nil {
				return nil, fmt.Errorf("--file entry %d: %w", i, err)
			}
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("nothing to send: pass --title or --file")
	}
	return events, nil
}

func (in sendInput) event(defaultTTL time.Duration) (notify.Event, error) {
	kind := notify.KindInfo
	if in.Kind != "" {
		k, err := notify.ParseKind(in.Kind)
		if err != nil {
			return notify.Event{}, err
		}
		kind = k
	}

	ttl := defaultTTL
	if in.TTL != "" {
		d, err := time.ParseDuration(in.TTL)
		if err != nil {
			return notify.Event{}, fmt.Errorf("ttl: %w", err)
		}
		ttl = d
	}

	return notify.Event{
		Topic:       in.Topic,
		Kind:        kind,
		Title:       in.Title,
		Message:     in.Message,
		AutoDismiss: ttl,
	}, nil
}

// routeAll routes every event and returns the ids of those enqueued. Muted
// events are skipped.
func routeAll(ctx context.Context, router *notify.Router, events []notify.Event) ([]notify.ID, error) {
	var ids []notify.ID
	for _, ev := range events {
		id, err := router.Route(ctx, ev)
		if err != nil {
			return ids, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
