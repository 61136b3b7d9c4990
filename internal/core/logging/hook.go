package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts toast_id and topic from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if id := GetToastID(ctx); id != "" {
		e.Str("toast_id", id)
	}

	if topic := GetTopic(ctx); topic != "" {
		e.Str("topic", topic)
	}
}
