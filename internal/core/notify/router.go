package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/logging"
)

// Enqueuer is the part of Store the Router needs.
type Enqueuer interface {
	Enqueue(req Request) (ID, error)
}

// Rule adjusts notifications whose topic matches Pattern. Patterns use
// doublestar syntax over slash separated topics, e.g. "ci/**" or "deploy/*".
type Rule struct {
	Pattern string `yaml:"pattern"`
	// Kind overrides the event's kind when set.
	Kind Kind `yaml:"kind"`
	// TTL overrides the auto-dismiss duration when set. A zero TTL makes
	// matching notifications persistent.
	TTL *time.Duration `yaml:"ttl"`
	// Mute drops matching events.
	Mute bool `yaml:"mute"`
}

// Validate checks the rule's pattern and overrides.
func (r Rule) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("pattern", r.Pattern, validPattern),
		criterio.Run("kind", r.Kind, func(k Kind) error {
			if k == "" {
				return nil
			}
			return validKind(k)
		}),
		criterio.Run("ttl", r.TTL, func(d *time.Duration) error {
			if d == nil {
				return nil
			}
			return nonNegative(*d)
		}),
	)
}

func validPattern(p string) error {
	if p == "" {
		return fmt.Errorf("is required")
	}
	if !doublestar.ValidatePattern(p) {
		return fmt.Errorf("invalid pattern %q", p)
	}
	return nil
}

// Event is something that happened elsewhere in the application and may
// deserve a notification.
type Event struct {
	Topic       string
	Kind        Kind
	Title       string
	Message     string
	AutoDismiss time.Duration
}

// Router maps topic events to notifications. The first rule whose pattern
// matches the topic applies; events that match no rule are enqueued as is.
type Router struct {
	target Enqueuer
	rules  []Rule
	logger zerolog.Logger
}

// NewRouter validates rules and returns a router enqueueing into target.
func NewRouter(target Enqueuer, rules []Rule, logger zerolog.Logger) (*Router, error) {
	var errs criterio.FieldErrorsBuilder
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			errs = errs.Append(fmt.Sprintf("rules[%d]", i), err)
		}
	}
	if err := errs.ToError(); err != nil {
		return nil, err
	}

	return &Router{target: target, rules: rules, logger: logger}, nil
}

// Route applies the matching rule to ev and enqueues the result. It returns
// an empty ID without error when a rule mutes the event.
func (r *Router) Route(ctx context.Context, ev Event) (ID, error) {
	ctx = logging.WithTopic(ctx, ev.Topic)

	req := Request{
		Kind:        ev.Kind,
		Title:       ev.Title,
		Message:     ev.Message,
		AutoDismiss: ev.AutoDismiss,
		Source:      ev.Topic,
	}

	if rule, ok := r.match(ev.Topic); ok {
		if rule.Mute {
			r.logger.Debug().Ctx(ctx).Str("rule", rule.Pattern).Msg("event muted")
			return "", nil
		}
		if rule.Kind != "" {
			req.Kind = rule.Kind
		}
		if rule.TTL != nil {
			req.AutoDismiss = *rule.TTL
		}
	}

	id, err := r.target.Enqueue(req)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", ev.Topic, err)
	}

	r.logger.Debug().Ctx(logging.WithToastID(ctx, string(id))).Msg("event routed")
	return id, nil
}

func (r *Router) match(topic string) (Rule, bool) {
	if topic == "" {
		return Rule{}, false
	}
	for _, rule := range r.rules {
		// Patterns were validated in NewRouter, so Match cannot fail.
		if ok, _ := doublestar.Match(rule.Pattern, topic); ok {
			return rule, true
		}
	}
	return Rule{}, false
}
