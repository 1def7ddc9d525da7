package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("with nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger")
		}
	})

	t.Run("writes to the given writer", func(t *testing.T) {
		output := &bytes.Buffer{}
		logger := NewLogger(output)

		logger.Info("hello")
		if !strings.Contains(output.String(), "hello") {
			t.Errorf("expected log output, got %s", output.String())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info("hello")

	data := readFileOrFail(t, path)
	if !strings.Contains(data, "hello") {
		t.Errorf("expected log entry in file, got %s", data)
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]string{"key": "value"}

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(v, false)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if string(data) != `{"key":"value"}` {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("indented", func(t *testing.T) {
		data, err := MarshalJSON(v, true)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(data), "\n  \"key\"") {
			t.Errorf("expected indented output, got %s", data)
		}
	})
}
