package logging

import "context"

type contextKey string

const (
	toastIDKey contextKey = "toast_id"
	topicKey   contextKey = "topic"
)

// WithToastID adds a notification ID to the context.
func WithToastID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, toastIDKey, id)
}

// WithTopic adds the topic an event was published on to the context.
func WithTopic(ctx context.Context, topic string) context.Context {
	return context.WithValue(ctx, topicKey, topic)
}

// GetToastID retrieves the notification ID from the context.
// Returns empty string if not present.
func GetToastID(ctx context.Context) string {
	if id, ok := ctx.Value(toastIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTopic retrieves the topic from the context.
// Returns empty string if not present.
func GetTopic(ctx context.Context) string {
	if topic, ok := ctx.Value(topicKey).(string); ok {
		return topic
	}
	return ""
}
