package selection

import (
	"testing"

	"slate/internal/domain"
)

func TestSet_Toggle(t *testing.T) {
	s := New()

	s.Toggle("a", "Backlog", 0)
	if !s.Selected("a") || s.Len() != 1 {
		t.Fatal("toggle should select")
	}
	a, ok := s.Anchor()
	if !ok || a.TaskID != "a" || a.Column != "Backlog" || a.Index != 0 {
		t.Errorf("anchor = %+v", a)
	}

	s.Toggle("a", "Backlog", 0)
	if s.Selected("a") {
		t.Error("second toggle should deselect")
	}
	if _, ok := s.Anchor(); !ok {
		t.Error("anchor survives a deselect toggle")
	}
}

func TestSet_ExtendTo_SameColumn(t *testing.T) {
	view := []string{"a", "b", "c", "d", "e"}
	s := New()

	// Spec example: anchor at b (index 1), shift to d (index 3) selects b..d.
	s.Toggle("b", "Backlog", 1)
	s.ExtendTo("d", "Backlog", 3, view)

	for _, id := range []string{"b", "c", "d"} {
		if !s.Selected(id) {
			t.Errorf("%s should be selected", id)
		}
	}
	if s.Selected("a") || s.Selected("e") {
		t.Error("tasks outside the range must not be selected")
	}
}

func TestSet_ExtendTo_Backwards(t *testing.T) {
	view := []string{"a", "b", "c", "d", "e"}
	s := New()

	s.Toggle("d", "Backlog", 3)
	s.ExtendTo("b", "Backlog", 1, view)

	for _, id := range []string{"b", "c", "d"} {
		if !s.Selected(id) {
			t.Errorf("%s should be selected extending upward", id)
		}
	}
}

func TestSet_ExtendTo_KeepsPriorSelection(t *testing.T) {
	view := []string{"a", "b", "c", "d", "e"}
	s := New()

	s.Add("a") // prior selection outside the range
	s.Toggle("b", "Backlog", 1)
	s.ExtendTo("d", "Backlog", 3, view)

	if !s.Selected("a") {
		t.Error("range extend must union with the prior selection")
	}
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
}

func TestSet_ExtendTo_DifferentColumnDegradesToToggle(t *testing.T) {
	s := New()
	s.Toggle("b", "Backlog", 1)

	s.ExtendTo("x", "Doing", 0, []string{"x", "y"})

	if !s.Selected("x") {
		t.Error("cross-column extend should toggle the clicked task")
	}
	if s.Selected("y") {
		t.Error("cross-column extend must not select a range")
	}
	a, _ := s.Anchor()
	if a.Column != "Doing" || a.TaskID != "x" {
		t.Errorf("anchor should move to the toggled task, got %+v", a)
	}
}

func TestSet_ExtendTo_NoAnchor(t *testing.T) {
	s := New()
	s.ExtendTo("c", "Backlog", 2, []string{"a", "b", "c"})

	if !s.Selected("c") || s.Len() != 1 {
		t.Error("extend without an anchor behaves as a plain toggle")
	}
}

func TestSet_Clear(t *testing.T) {
	s := New()
	s.Toggle("a", "Backlog", 0)
	s.Add("b")

	s.Clear()
	if !s.Empty() {
		t.Error("Clear should empty the selection")
	}
	if _, ok := s.Anchor(); ok {
		t.Error("Clear should drop the anchor")
	}
}

func TestSet_Ordered(t *testing.T) {
	snap := &domain.Snapshot{Index: domain.Index{Columns: []domain.Column{
		{Name: "Backlog", Tasks: []string{"b1", "b2"}},
		{Name: "Doing", Tasks: []string{"d1"}},
	}}}

	s := New()
	for _, id := range []string{"d1", "b2", "zz-gone", "b1", "aa-gone"} {
		s.Add(id)
	}

	got := s.Ordered(snap)
	want := []string{"b1", "b2", "d1", "aa-gone", "zz-gone"}
	if len(got) != len(want) {
		t.Fatalf("Ordered returned %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ordered[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSet_Splice(t *testing.T) {
	s := New()
	s.Add("b")
	s.Add("d")

	tests := []struct {
		name      string
		view      []string
		dropIndex int
		want      []string
	}{
		{
			name:      "block to front",
			view:      []string{"a", "b", "c", "d", "e"},
			dropIndex: 0,
			want:      []string{"b", "d", "a", "c", "e"},
		},
		{
			name:      "block mid",
			view:      []string{"a", "b", "c", "d", "e"},
			dropIndex: 2,
			want:      []string{"a", "c", "b", "d", "e"},
		},
		{
			name:      "drop index clamped",
			view:      []string{"a", "b", "c", "d", "e"},
			dropIndex: 99,
			want:      []string{"a", "c", "e", "b", "d"},
		},
		{
			name:      "no selected in view",
			view:      []string{"x", "y"},
			dropIndex: 1,
			want:      []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Splice(tt.view, tt.dropIndex)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Splice()[%d] = %s, want %v", i, got[i], tt.want)
				}
			}
		})
	}
}
