package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/store"
	"tableflip.dev/planboard/pkg/task"
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
		ColorSource: func() string { return "#123456" },
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func TestListFormats(t *testing.T) {
	svc := newService(t)

	var table bytes.Buffer
	if err := (&List{Service: svc, Out: &table}).Do(context.Background()); err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(table.String(), "Tasks - 3 tasks") {
		t.Fatalf("expected the seeded tasks:\n%s", table.String())
	}

	var js bytes.Buffer
	if err := (&List{Service: svc, Format: "json", Out: &js}).Do(context.Background()); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got []task.Task
	if err := json.Unmarshal(js.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, js.String())
	}
	if len(got) != 3 || got[0].Name != "Task 1" {
		t.Fatalf("unexpected tasks %+v", got)
	}
}

func TestAddAppliesValues(t *testing.T) {
	svc := newService(t)
	var buf bytes.Buffer
	add := &Add{Service: svc, Out: &buf, Values: map[task.Field]string{
		task.FieldEnd:   "2025-06-03",
		task.FieldName:  "Review",
		task.FieldStart: "2025-06-02",
	}}
	if err := add.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	tasks := svc.Tasks()
	last := tasks[len(tasks)-1]
	if last.ID != 4 || last.Name != "Review" || last.Start.String() != "2025-06-02" || last.End.String() != "2025-06-03" || last.Color != "#123456" {
		t.Fatalf("unexpected task %+v", last)
	}
	if !strings.Contains(buf.String(), "added task 4") {
		t.Fatalf("unexpected notice %q", buf.String())
	}
}

func TestSetAndRemove(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	var buf bytes.Buffer

	if err := (&Set{Service: svc, ID: 1, Field: task.FieldEnd, Value: "2025-06-02", Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := svc.Task(1)
	if got.Start.String() != "2025-06-02" || got.End.String() != "2025-06-02" {
		t.Fatalf("expected start pulled back to the new end, got %s..%s", got.Start, got.End)
	}
	if err := (&Set{Service: svc, ID: 99, Field: task.FieldName, Value: "x", Out: &buf}).Do(ctx); err == nil {
		t.Fatalf("expected an unknown id to fail")
	}
	if err := (&Remove{Service: svc, ID: 2, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := (&Remove{Service: svc, ID: 2, Out: &buf}).Do(ctx); err == nil {
		t.Fatalf("expected a second remove to fail")
	}
	if svc.Tasks()[1].ID != 3 {
		t.Fatalf("expected task 2 gone, got %+v", svc.Tasks())
	}
}
