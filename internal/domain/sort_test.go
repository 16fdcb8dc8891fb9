package domain

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestApplySort_SingleField(t *testing.T) {
	tasks := []Task{
		{ID: "b", Name: "Bravo", Metadata: Metadata{Priority: 2}},
		{ID: "a", Name: "alpha", Metadata: Metadata{Priority: 1}},
		{ID: "c", Name: "Charlie", Metadata: Metadata{Priority: 3}},
	}

	tests := []struct {
		name  string
		rules []SortRule
		want  []string
	}{
		{
			name:  "name ascending is case-insensitive",
			rules: []SortRule{{Field: SortByName, Order: SortAscending}},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "priority descending",
			rules: []SortRule{{Field: SortByPriority, Order: SortDescending}},
			want:  []string{"c", "b", "a"},
		},
		{
			name:  "no rules keeps order",
			rules: nil,
			want:  []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySort(tasks, tt.rules)
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestApplySort_TieBreak(t *testing.T) {
	tasks := []Task{
		{ID: "late", Metadata: Metadata{Priority: 1, Due: datePtr(2025, 3, 9)}},
		{ID: "early", Metadata: Metadata{Priority: 1, Due: datePtr(2025, 1, 2)}},
		{ID: "top", Metadata: Metadata{Priority: 0, Due: datePtr(2025, 6, 1)}},
	}

	rules := []SortRule{
		{Field: SortByPriority, Order: SortAscending},
		{Field: SortByDue, Order: SortAscending},
	}
	got := ApplySort(tasks, rules)

	want := []string{"top", "early", "late"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestApplySort_MissingDatesSink(t *testing.T) {
	tasks := []Task{
		{ID: "undated"},
		{ID: "dated", Metadata: Metadata{Due: datePtr(2025, 1, 1)}},
	}

	got := ApplySort(tasks, []SortRule{{Field: SortByDue, Order: SortAscending}})
	if got[0].ID != "dated" || got[1].ID != "undated" {
		t.Errorf("undated tasks should sort after dated ones, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestApplySort_DoesNotMutateInput(t *testing.T) {
	tasks := []Task{
		{ID: "z", Name: "zulu"},
		{ID: "a", Name: "alpha"},
	}

	ApplySort(tasks, []SortRule{{Field: SortByName, Order: SortAscending}})
	if tasks[0].ID != "z" {
		t.Error("ApplySort must not reorder the input slice")
	}
}
