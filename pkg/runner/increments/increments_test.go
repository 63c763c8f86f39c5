package increments

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc, err := app.New(context.Background(), app.Options{
		Persistence: p,
		Today:       calendar.MustParse("2025-06-01"),
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func names(items []increment.Increment) string {
	var s []string
	for _, inc := range items {
		s = append(s, inc.Name)
	}
	return strings.Join(s, ",")
}

func TestAddUsesFormForMissingValues(t *testing.T) {
	svc := newService(t)
	var buf bytes.Buffer
	called := false
	add := &Add{
		Service: svc,
		Input:   increment.Input{Name: "A"},
		Out:     &buf,
		Form: func(in *increment.Input) error {
			called = true
			in.Start, in.End = "2025-06-10", "2025-06-20"
			return nil
		},
	}
	if err := add.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !called || svc.Increments()[0].End.String() != "2025-06-20" {
		t.Fatalf("expected the form to complete the input, got %+v", svc.Increments())
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc := newService(t)
	add := &Add{Service: svc, Input: increment.Input{Name: "A", Start: "2025-06-10", End: "2025-06-01"}, Out: &bytes.Buffer{}}
	if err := add.Do(context.Background()); !errors.Is(err, increment.ErrInvertedRange) {
		t.Fatalf("expected an inverted range error, got %v", err)
	}
	if len(svc.Increments()) != 0 {
		t.Fatalf("expected nothing added")
	}
}

func TestMoveListAndRemove(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	var buf bytes.Buffer
	for _, in := range []increment.Input{
		{Name: "A", Start: "2025-06-10", End: "2025-06-20"},
		{Name: "B", Start: "2025-06-01", End: "2025-06-05"},
	} {
		if err := (&Add{Service: svc, Input: in, Out: &buf}).Do(ctx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if got := names(svc.Increments()); got != "B,A" {
		t.Fatalf("expected start order, got %s", got)
	}
	if err := (&Move{Service: svc, ID: 2, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := names(svc.Increments()); got != "A,B" {
		t.Fatalf("expected B moved down, got %s", got)
	}
	buf.Reset()
	if err := (&Move{Service: svc, ID: 2, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("move at the edge: %v", err)
	}
	if !strings.Contains(buf.String(), "already last") {
		t.Fatalf("expected an edge notice, got %q", buf.String())
	}

	buf.Reset()
	if err := (&List{Service: svc, ShowID: true, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), "Increments - 2 increments") {
		t.Fatalf("unexpected list:\n%s", buf.String())
	}

	refuse := func(increment.Increment) bool { return false }
	if err := (&Remove{Service: svc, ID: 1, Confirm: refuse, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(svc.Increments()) != 2 {
		t.Fatalf("expected a declined remove to keep the increment")
	}
	if err := (&Remove{Service: svc, ID: 1, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := names(svc.Increments()); got != "B" {
		t.Fatalf("expected A removed, got %s", got)
	}
	if err := (&Remove{Service: svc, ID: 1, Out: &buf}).Do(ctx); err == nil {
		t.Fatalf("expected an unknown id to fail")
	}
}
