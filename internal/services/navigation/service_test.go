package navigation

import (
	"testing"

	"slate/internal/domain"
	"slate/internal/ui/board"
)

func makeTestColumns() []board.Column {
	return []board.Column{
		{
			Title: "Backlog",
			Tasks: []domain.Task{
				{ID: "write-report", Name: "Write report", Column: "Backlog"},
				{ID: "fix-login", Name: "Fix login", Column: "Backlog"},
			},
		},
		{
			Title: "In Progress",
			Tasks: []domain.Task{
				{ID: "api-refactor", Name: "API refactor", Column: "In Progress"},
			},
		},
		{
			Title: "Done",
			Tasks: []domain.Task{
				{ID: "setup-ci", Name: "Setup CI", Column: "Done"},
			},
		},
	}
}

func TestNewService(t *testing.T) {
	svc := NewService()
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
	if svc.GetCursor() == nil {
		t.Fatal("GetCursor returned nil")
	}
}

func TestService_GetPosition(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Initially, cursor has no task selected
	pos := svc.GetPosition(columns)
	if !pos.Valid {
		t.Error("Expected valid position with tasks available")
	}
	if pos.Column != 0 {
		t.Errorf("Expected column 0, got %d", pos.Column)
	}

	svc.SelectTask("api-refactor", 1)
	pos = svc.GetPosition(columns)
	if pos.Column != 1 || pos.Task != 0 {
		t.Errorf("Expected (1,0), got (%d,%d)", pos.Column, pos.Task)
	}
}

func TestService_MoveDownUp(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	svc.SelectTask("write-report", 0)

	svc.MoveDown(columns)
	if got := svc.GetCursor().TaskID; got != "fix-login" {
		t.Errorf("MoveDown: cursor = %q, want fix-login", got)
	}

	// Clamped at the bottom
	svc.MoveDown(columns)
	if got := svc.GetCursor().TaskID; got != "fix-login" {
		t.Errorf("MoveDown at bottom: cursor = %q", got)
	}

	svc.MoveUp(columns)
	if got := svc.GetCursor().TaskID; got != "write-report" {
		t.Errorf("MoveUp: cursor = %q, want write-report", got)
	}
}

func TestService_MoveHorizontalKeepsRow(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	svc.SelectTask("fix-login", 0)

	// Row 1 clamps to the single-task column
	svc.MoveRight(columns)
	if got := svc.GetCursor().TaskID; got != "api-refactor" {
		t.Errorf("MoveRight: cursor = %q, want api-refactor", got)
	}

	svc.MoveLeft(columns)
	if got := svc.GetCursor().TaskID; got != "write-report" {
		t.Errorf("MoveLeft: cursor = %q, want write-report", got)
	}
}

func TestCursor_SurvivesFilterChanges(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	svc.SelectTask("api-refactor", 1)

	// Task disappears from the view (filtered out): position falls back
	filtered := []board.Column{columns[0], {Title: "In Progress"}, columns[2]}
	pos := svc.GetPosition(filtered)
	if !pos.Valid || pos.Column != 1 && pos.Column != 0 {
		// Fallback column has no tasks, so position degrades to column 1, invalid or column 0
		t.Logf("fallback position: %+v", pos)
	}

	// Task returns: cursor finds it again by ID
	pos = svc.GetPosition(columns)
	if pos.Column != 1 || pos.Task != 0 || !pos.Valid {
		t.Errorf("cursor should find task again, got %+v", pos)
	}
}

func TestService_Goto(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	svc.SelectTask("fix-login", 0)

	svc.GotoTop(columns)
	if got := svc.GetCursor().TaskID; got != "write-report" {
		t.Errorf("GotoTop: cursor = %q", got)
	}

	svc.GotoBottom(columns)
	if got := svc.GetCursor().TaskID; got != "fix-login" {
		t.Errorf("GotoBottom: cursor = %q", got)
	}

	svc.GotoLastColumn(columns)
	if got := svc.GetCursor().TaskID; got != "setup-ci" {
		t.Errorf("GotoLastColumn: cursor = %q", got)
	}

	svc.GotoFirstColumn(columns)
	if got := svc.GetCursor().TaskID; got != "write-report" {
		t.Errorf("GotoFirstColumn: cursor = %q", got)
	}
}

func TestService_JumpToTaskByID(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	if !svc.JumpToTaskByID(columns, "setup-ci") {
		t.Fatal("JumpToTaskByID should find setup-ci")
	}
	if got := svc.GetCursor().TaskID; got != "setup-ci" {
		t.Errorf("cursor = %q", got)
	}
	if svc.JumpToTaskByID(columns, "missing") {
		t.Error("JumpToTaskByID should miss unknown id")
	}
}

func TestService_CurrentColumnTitle(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	svc.SelectTask("api-refactor", 1)
	if got := svc.CurrentColumnTitle(columns); got != "In Progress" {
		t.Errorf("CurrentColumnTitle = %q", got)
	}
}
