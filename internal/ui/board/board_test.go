package board

import (
	"strings"
	"testing"
	"time"

	"slate/internal/domain"
	"slate/internal/ui/styles"
)

func task(id, name string) domain.Task {
	return domain.Task{ID: id, Name: name, Column: "Backlog"}
}

func TestRenderShowsAllColumns(t *testing.T) {
	columns := []Column{
		{Title: "Backlog", Tasks: []domain.Task{task("a", "Alpha"), task("b", "Beta")}},
		{Title: "Done", Tasks: []domain.Task{task("c", "Gamma")}},
	}

	out := Render(columns, Cursor{}, nil, styles.New(), 120, 30, time.Now())

	for _, want := range []string{"Backlog", "Done", "Alpha", "Beta", "Gamma"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered board missing %q", want)
		}
	}
}

func TestRenderCardOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	tk := task("a", "Alpha")
	tk.Metadata.Due = &due

	out := RenderCard(tk, false, false, 40, now, styles.New())
	if !strings.Contains(out, "09/03/2025") {
		t.Errorf("card missing due date: %q", out)
	}
}

func TestRenderCardCursorIndicator(t *testing.T) {
	out := RenderCard(task("a", "Alpha"), true, false, 40, time.Now(), styles.New())
	if !strings.Contains(out, "▶") {
		t.Error("active card missing cursor indicator")
	}
}

func TestFindTask(t *testing.T) {
	columns := []Column{
		{Title: "Backlog", Tasks: []domain.Task{task("a", "Alpha")}},
		{Title: "Done", Tasks: []domain.Task{task("b", "Beta"), task("c", "Gamma")}},
	}

	col, row, ok := FindTask(columns, "c")
	if !ok || col != 1 || row != 1 {
		t.Errorf("FindTask(c) = (%d, %d, %v), want (1, 1, true)", col, row, ok)
	}
	if _, _, ok := FindTask(columns, "zz"); ok {
		t.Error("FindTask should miss unknown id")
	}
}

func TestColumnTaskIDs(t *testing.T) {
	col := Column{Title: "Backlog", Tasks: []domain.Task{task("a", "Alpha"), task("b", "Beta")}}
	ids := col.TaskIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("TaskIDs = %v", ids)
	}
}
