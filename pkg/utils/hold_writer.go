// Package utils holds small io helpers shared by commands.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// HoldWriter forwards writes to its destination until Hold is called, then
// buffers them in memory until Release. It lets log output that would land on
// the terminal wait while a full screen program owns it. Safe for concurrent
// use.
type HoldWriter struct {
	mu   sync.Mutex
	dst  io.Writer
	held bool
	buf  bytes.Buffer
}

// NewHoldWriter creates a HoldWriter writing to dst.
func NewHoldWriter(dst io.Writer) *HoldWriter {
	return &HoldWriter{dst: dst}
}

// Write forwards p, or buffers it while held.
func (h *HoldWriter) Write(p []byte) (n int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.held {
		return h.buf.Write(p)
	}
	return h.dst.Write(p)
}

// Hold starts buffering.
func (h *HoldWriter) Hold() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held = true
}

// Release writes everything buffered to the destination and stops
// buffering.
func (h *HoldWriter) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.held = false
	if h.buf.Len() == 0 {
		return nil
	}
	_, err := h.buf.WriteTo(h.dst)
	return err
}
