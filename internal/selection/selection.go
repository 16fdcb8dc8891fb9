// Package selection turns raw selection gestures into a target selection
// set. The set is transient: it is cleared after a successful bulk action,
// on explicit deselect, and on escape.
package selection

import (
	"sort"

	"slate/internal/domain"
)

// Anchor records the last toggled task: its ID, the column it was in, and
// its position within that column's filtered, ordered view at click time.
// The anchor is only meaningful within its own column.
type Anchor struct {
	TaskID string
	Column string
	Index  int
}

// Set is the current selection plus the range anchor.
type Set struct {
	ids    map[string]struct{}
	anchor *Anchor
}

// New creates an empty selection.
func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Toggle flips a task's membership and moves the anchor to it. This is the
// modifier-click gesture.
func (s *Set) Toggle(taskID, column string, index int) {
	if _, ok := s.ids[taskID]; ok {
		delete(s.ids, taskID)
	} else {
		s.ids[taskID] = struct{}{}
	}
	s.anchor = &Anchor{TaskID: taskID, Column: column, Index: index}
}

// Add puts a task into the selection without touching the anchor.
func (s *Set) Add(taskID string) {
	s.ids[taskID] = struct{}{}
}

// ExtendTo handles the shift-click gesture against the given column's
// filtered view. With an anchor in the same column it adds every task
// between the anchor position and index, inclusive, both directions;
// nothing already selected outside that range is removed. Without an
// anchor, or against a different column, it degrades to a plain toggle.
func (s *Set) ExtendTo(taskID, column string, index int, view []string) {
	if s.anchor == nil || s.anchor.Column != column {
		s.Toggle(taskID, column, index)
		return
	}

	lo, hi := s.anchor.Index, index
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= len(view) {
		hi = len(view) - 1
	}
	for i := lo; i <= hi; i++ {
		s.ids[view[i]] = struct{}{}
	}
}

// Selected reports membership.
func (s *Set) Selected(taskID string) bool {
	_, ok := s.ids[taskID]
	return ok
}

// Len returns the selection size.
func (s *Set) Len() int { return len(s.ids) }

// Empty reports whether nothing is selected.
func (s *Set) Empty() bool { return len(s.ids) == 0 }

// Anchor returns the current anchor, if any.
func (s *Set) Anchor() (Anchor, bool) {
	if s.anchor == nil {
		return Anchor{}, false
	}
	return *s.anchor, true
}

// Clear empties the selection and drops the anchor.
func (s *Set) Clear() {
	s.ids = make(map[string]struct{})
	s.anchor = nil
}

// Ordered returns the selected IDs in a deterministic order: ascending by
// position in the snapshot (column order, then intra-column order), with
// IDs missing from the snapshot last in lexical order. Bulk operations
// iterate in this order so observable side effects, like the creation
// order of recurrence successors, are reproducible.
func (s *Set) Ordered(snap *domain.Snapshot) []string {
	type keyed struct {
		id       string
		col, row int
		known    bool
	}
	items := make([]keyed, 0, len(s.ids))
	for id := range s.ids {
		col, row, ok := snap.Position(id)
		items = append(items, keyed{id: id, col: col, row: row, known: ok})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.known != b.known {
			return a.known
		}
		if !a.known {
			return a.id < b.id
		}
		if a.col != b.col {
			return a.col < b.col
		}
		return a.row < b.row
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// Splice locally reorders a column view for a drag of the whole selection:
// every selected task is extracted, keeping relative order, and reinserted
// as one contiguous block at dropIndex (an index into the view after
// extraction, clamped to its bounds).
func (s *Set) Splice(view []string, dropIndex int) []string {
	var block, rest []string
	for _, id := range view {
		if s.Selected(id) {
			block = append(block, id)
		} else {
			rest = append(rest, id)
		}
	}
	if dropIndex < 0 {
		dropIndex = 0
	}
	if dropIndex > len(rest) {
		dropIndex = len(rest)
	}
	out := make([]string, 0, len(view))
	out = append(out, rest[:dropIndex]...)
	out = append(out, block...)
	out = append(out, rest[dropIndex:]...)
	return out
}
