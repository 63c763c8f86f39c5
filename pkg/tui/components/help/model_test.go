package help

import (
	"strings"
	"testing"
)

func TestHelpRendersBindings(t *testing.T) {
	m := New(80, 60)
	view := m.View()
	for _, want := range []string{"planboard", "Gantt chart"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in help view:\n%s", want, view)
		}
	}
}

func TestShowNamesSection(t *testing.T) {
	m := New(80, 12)
	m.Show("Increments")
	if !strings.Contains(m.View(), "help · Increments") {
		t.Fatalf("expected the section in the title:\n%s", m.View())
	}
	if got := m.offsetOf("missing"); got != 0 {
		t.Fatalf("expected an unknown section to map to the top, got %d", got)
	}
	if got := m.offsetOf("Increments"); got == 0 {
		t.Fatalf("expected the increments heading below the top")
	}
}

func TestSetSizeEnforcesMinimum(t *testing.T) {
	m := New(1, 1)
	if m.width != minWidth || m.height != minHeight {
		t.Fatalf("expected the minimum size, got %dx%d", m.width, m.height)
	}
}
