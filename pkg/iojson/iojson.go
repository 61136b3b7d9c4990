// Package iojson holds utilities for reading and writing JSON from a command
// line interface perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// WriteIndent writes obj as indented JSON followed by a newline.
func WriteIndent(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Lines writes one compact JSON document per line. Safe for concurrent use.
type Lines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewLines creates a Lines writer on w.
func NewLines(w io.Writer) *Lines {
	return &Lines{enc: json.NewEncoder(w)}
}

// Write encodes obj as a single line.
func (l *Lines) Write(obj any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(obj)
}
