package gantt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/store"
)

func TestGanttPrintsSeededBoard(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc, err := app.New(context.Background(), app.Options{Persistence: p, Today: calendar.MustParse("2025-06-01")})
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	var buf bytes.Buffer
	g := &Gantt{Service: svc, Key: true, Out: &buf}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("gantt: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2025/6", "週1", "Task 1", "5日", "Chart"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
