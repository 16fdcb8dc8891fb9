package recurrence

import (
	"testing"
	"time"

	"slate/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDue(t *testing.T) {
	tests := []struct {
		name string
		rule domain.RecurrenceRule
		base time.Time
		want time.Time
	}{
		{
			name: "daily interval 3",
			rule: domain.RecurrenceRule{Type: domain.RecurDaily, Interval: 3},
			base: date(2025, 1, 1),
			want: date(2025, 1, 4),
		},
		{
			name: "daily default interval",
			rule: domain.RecurrenceRule{Type: domain.RecurDaily},
			base: date(2025, 1, 1),
			want: date(2025, 1, 2),
		},
		{
			name: "weekly interval 2",
			rule: domain.RecurrenceRule{Type: domain.RecurWeekly, Interval: 2},
			base: date(2025, 1, 1),
			want: date(2025, 1, 15),
		},
		{
			name: "monthly day 31 clamps to february",
			rule: domain.RecurrenceRule{Type: domain.RecurMonthly, Interval: 1, DayOfMonth: 31},
			base: date(2025, 1, 31),
			want: date(2025, 2, 28),
		},
		{
			name: "monthly day 31 clamps to leap february",
			rule: domain.RecurrenceRule{Type: domain.RecurMonthly, Interval: 1, DayOfMonth: 31},
			base: date(2024, 1, 31),
			want: date(2024, 2, 29),
		},
		{
			name: "monthly day 31 clamps to 30-day month",
			rule: domain.RecurrenceRule{Type: domain.RecurMonthly, Interval: 1, DayOfMonth: 31},
			base: date(2025, 3, 31),
			want: date(2025, 4, 30),
		},
		{
			name: "monthly without day keeps base day",
			rule: domain.RecurrenceRule{Type: domain.RecurMonthly, Interval: 2},
			base: date(2025, 1, 15),
			want: date(2025, 3, 15),
		},
		{
			name: "monthly end-of-month without configured day clamps too",
			rule: domain.RecurrenceRule{Type: domain.RecurMonthly},
			base: date(2025, 1, 31),
			want: date(2025, 2, 28),
		},
		{
			name: "annually",
			rule: domain.RecurrenceRule{Type: domain.RecurAnnually, Interval: 1},
			base: date(2025, 6, 15),
			want: date(2026, 6, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDue(tt.rule, tt.base)
			if !got.Equal(tt.want) {
				t.Errorf("NextDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func boardIndex() domain.Index {
	return domain.Index{
		Columns: []domain.Column{
			{Name: "Backlog"},
			{Name: "Doing"},
			{Name: "Done"},
		},
		Hidden:    []string{"Backlog"},
		Completed: []string{"Done"},
	}
}

func TestDerive(t *testing.T) {
	ix := boardIndex()
	now := date(2025, 3, 10)
	due := date(2025, 3, 1)

	task := domain.Task{
		ID:          "water-plants",
		Name:        "Water plants",
		Description: "All of them",
		Column:      "Doing",
		Subtasks:    []domain.Subtask{{Text: "kitchen"}},
		Relations:   []domain.Relation{{Type: "blocks", Task: "x"}},
		Comments:    []domain.Comment{{Author: "a", Text: "b"}},
		Metadata: domain.Metadata{
			Due:         &due,
			Priority:    2,
			Assignee:    "dana",
			Tags:        []string{"home"},
			Attachments: []string{"photo.png"},
			Recurrence:  &domain.RecurrenceRule{Type: domain.RecurWeekly, Interval: 1},
		},
	}

	next := Derive(task, ix, "Done", now)
	if next == nil {
		t.Fatal("Derive returned nil for a recurring task completed into Done")
	}

	if next.Name != "Water plants" || next.Description != "All of them" {
		t.Error("successor should copy name and description")
	}
	if next.Column != "Doing" {
		t.Errorf("successor placed in %q, want first visible non-completed column Doing", next.Column)
	}
	if next.Metadata.Due == nil || !next.Metadata.Due.Equal(date(2025, 3, 8)) {
		t.Errorf("successor due = %v, want 08/03/2025 (base is the old due date)", next.Metadata.Due)
	}
	if next.Metadata.Created == nil || !next.Metadata.Created.Equal(now) {
		t.Error("successor should get a fresh creation timestamp")
	}
	if next.Metadata.Started != nil || next.Metadata.Completed != nil {
		t.Error("successor must not inherit started/completed dates")
	}
	if len(next.Subtasks) != 0 || len(next.Relations) != 0 || len(next.Comments) != 0 {
		t.Error("successor must start with empty subtasks, relations, and comments")
	}
	if next.Metadata.Recurrence == nil || next.Metadata.Recurrence.Type != domain.RecurWeekly {
		t.Error("successor should carry the same recurrence rule")
	}

	// Copies must be independent of the source task.
	next.Metadata.Tags[0] = "changed"
	if task.Metadata.Tags[0] != "home" {
		t.Error("successor tags must be an independent copy")
	}
	next.Metadata.Recurrence.Interval = 9
	if task.Metadata.Recurrence.Interval != 1 {
		t.Error("successor rule must be an independent copy")
	}
}

func TestDerive_NoDueDateUsesNow(t *testing.T) {
	ix := boardIndex()
	now := date(2025, 5, 1)
	task := domain.Task{
		ID: "t", Name: "t", Column: "Doing",
		Metadata: domain.Metadata{Recurrence: &domain.RecurrenceRule{Type: domain.RecurDaily, Interval: 3}},
	}

	next := Derive(task, ix, "Done", now)
	if next == nil {
		t.Fatal("expected successor")
	}
	if !next.Metadata.Due.Equal(date(2025, 5, 4)) {
		t.Errorf("due = %v, want now+3d", next.Metadata.Due)
	}
}

func TestDerive_Gates(t *testing.T) {
	ix := boardIndex()
	now := date(2025, 5, 1)

	recurring := domain.Task{
		ID: "a", Name: "a",
		Metadata: domain.Metadata{Recurrence: &domain.RecurrenceRule{Type: domain.RecurDaily}},
	}
	plain := domain.Task{ID: "b", Name: "b"}

	if Derive(recurring, ix, "Doing", now) != nil {
		t.Error("no successor when the target is not a completed column")
	}
	if Derive(plain, ix, "Done", now) != nil {
		t.Error("no successor without a recurrence rule")
	}
}

func TestPlacement_Fallback(t *testing.T) {
	// Every column hidden or completed: fall back to the first column.
	ix := domain.Index{
		Columns:   []domain.Column{{Name: "Done"}, {Name: "Archive"}},
		Hidden:    []string{"Archive"},
		Completed: []string{"Done"},
	}
	if got := Placement(ix); got != "Done" {
		t.Errorf("Placement = %q, want fallback to first column", got)
	}
}
