package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: "debug", Output: &buf, Service: "test"})

	log.Info("hello", F("gadget_id", "amzn1.ask.gadget.A"))
	log.Error("boom", Err(errors.New("bad")))
	log.Debug("detail")

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0]["message"] != "hello" || lines[0]["gadget_id"] != "amzn1.ask.gadget.A" {
		t.Errorf("Unexpected first line: %v", lines[0])
	}
	if lines[0]["service"] != "test" {
		t.Errorf("Expected service field, got %v", lines[0]["service"])
	}
	if lines[1]["level"] != "error" || lines[1]["error"] != "bad" {
		t.Errorf("Unexpected error line: %v", lines[1])
	}
	if lines[2]["level"] != "debug" {
		t.Errorf("Expected debug level, got %v", lines[2]["level"])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: "error", Output: &buf})

	log.Info("dropped")
	log.Debug("dropped")
	log.Error("kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0]["message"] != "kept" {
		t.Errorf("Expected kept message, got %v", lines[0]["message"])
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Output: &buf}).With(F("component", "dispatcher"))

	log.Info("routed")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["component"] != "dispatcher" {
		t.Errorf("Expected component field, got %v", lines)
	}
}

func TestNop(t *testing.T) {
	// Must not panic
	Nop().Info("ignored", F("k", "v"))
}
