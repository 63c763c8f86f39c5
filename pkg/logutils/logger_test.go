package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONLines(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "planboard.log")
	l, closer, err := New("info", file)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug().Msg("hidden")
	l.Info().Str("key", "tasks").Msg("saved")
	closer()

	// A second logger appends instead of truncating.
	l, closer, err = New("info", file)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Warn().Msg("again")
	closer()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), data)
	}
	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("expected JSON, got %q", lines[0])
	}
	if first["message"] != "saved" || first["key"] != "tasks" || first["time"] == nil {
		t.Fatalf("unexpected entry %v", first)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for an unknown level")
	}
}
