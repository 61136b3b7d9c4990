package notify

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces notification identities. Implementations must never
// return the same ID twice.
type IDGenerator interface {
	NewID() ID
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() ID

// NewID implements IDGenerator.
func (f IDFunc) NewID() ID { return f() }

// UUIDs generates random UUIDv4 identities.
func UUIDs() IDGenerator {
	return IDFunc(func() ID { return ID(uuid.NewString()) })
}

// Sequence generates predictable identities of the form "<prefix>-<n>",
// starting at 1. Safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence returns a Sequence using prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID implements IDGenerator.
func (s *Sequence) NewID() ID {
	return ID(fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1)))
}
