package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("store")
	logger.Info().Msg("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	cmp, ok := logEntry["cmp"]
	if !ok {
		t.Fatal("expected 'cmp' key in log output")
	}

	if cmp != "store" {
		t.Errorf("Component() cmp = %q, want %q", cmp, "store")
	}

	msg, ok := logEntry["message"]
	if !ok {
		t.Fatal("expected 'message' key in log output")
	}

	if msg != "test message" {
		t.Errorf("Component() message = %q, want %q", msg, "test message")
	}
}

func TestNew_writes_to_file(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "toast.log")

	logger, closer, err := New("debug", file, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug().Ctx(WithToastID(context.Background(), "t-9")).Msg("hello")
	closer()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	var logEntry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if logEntry["toast_id"] != "t-9" {
		t.Errorf("toast_id = %v, want %q", logEntry["toast_id"], "t-9")
	}
	if _, ok := logEntry["time"]; !ok {
		t.Error("expected timestamp in log output")
	}
}

func TestNew_rejects_unknown_level(t *testing.T) {
	_, closer, err := New("loud", "", nil)
	closer()
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_falls_back_to_writer(t *testing.T) {
	var buf bytes.Buffer

	logger, closer, err := New("info", "", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer()

	logger.Debug().Msg("dropped")
	logger.Info().Msg("kept")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("dropped")) {
		t.Errorf("debug line written at info level: %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Errorf("info line missing: %s", out)
	}
}
