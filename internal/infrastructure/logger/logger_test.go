package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, Config{Level: "debug", Format: "json"})

	log.Info().Str("user_id", "u-1").Msg("statement recorded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected level info, got %v", entry["level"])
	}
	if entry["message"] != "statement recorded" {
		t.Fatalf("expected message field, got %v", entry["message"])
	}
	if entry["user_id"] != "u-1" {
		t.Fatalf("expected user_id field, got %v", entry["user_id"])
	}
}

func TestConsoleFormatIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, Config{Level: "info", Format: "console"})

	log.Info().Msg("hello")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got JSON: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, Config{Level: "warn", Format: "json"})

	log.Debug().Msg("dropped")
	log.Info().Msg("dropped too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	log.Error().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected error output, got %q", buf.String())
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, Config{Level: "loud", Format: "json"})

	log.Debug().Msg("dropped")
	log.Info().Msg("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("debug output should be filtered at default level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected info output, got %q", buf.String())
	}
}
