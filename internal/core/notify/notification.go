// Package notify holds the transient notification (toast) domain: the
// notification model, the in-memory Store that owns the ordered collection of
// active notifications, and the Router that turns topic events into
// notifications.
package notify

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the severity of a notification. The set is closed; see Kinds.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Kinds returns every valid kind in display order.
func Kinds() []Kind {
	return []Kind{KindSuccess, KindError, KindWarning, KindInfo}
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	default:
		return false
	}
}

// ParseKind converts s to a Kind, accepting "warn" as an alias for warning.
func ParseKind(s string) (Kind, error) {
	if s == "warn" {
		return KindWarning, nil
	}
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown kind %q", s)
	}
	return k, nil
}

// ID identifies a notification for its whole lifetime. IDs are never reused.
type ID string

// Notification is a single active toast. Values handed out by the Store are
// copies; a notification never changes after it is enqueued.
type Notification struct {
	ID      ID
	Kind    Kind
	Title   string
	Message string
	// Seq is the store-wide insertion counter. Snapshots are ordered by Seq.
	Seq       uint64
	CreatedAt time.Time
	// AutoDismiss is zero for notifications that stay until dismissed.
	AutoDismiss time.Duration
	// Source is the topic the notification was routed from, if any.
	Source string
}

// Persistent reports whether the notification has no auto-dismiss timer.
func (n Notification) Persistent() bool {
	return n.AutoDismiss == 0
}

// Request describes a notification to enqueue.
type Request struct {
	Kind        Kind
	Title       string
	Message     string
	AutoDismiss time.Duration
	Source      string
}

var (
	// ErrInvalidRequest is returned by Enqueue when the request breaks the
	// contract (unknown kind, empty title, negative duration). The wrapped
	// error is a criterio.FieldErrors describing each field.
	ErrInvalidRequest = errors.New("invalid notification")

	// ErrClosed is returned by Enqueue after the store has been closed.
	ErrClosed = errors.New("notification store closed")
)
