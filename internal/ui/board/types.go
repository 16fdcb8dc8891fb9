package board

import "slate/internal/domain"

// Column represents a visible kanban column with its filtered, sorted tasks
type Column struct {
	Title string
	Tasks []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index
	Task   int // Task index within column
}

// TaskIDs returns the ordered task IDs of a column
func (c Column) TaskIDs() []string {
	ids := make([]string, len(c.Tasks))
	for i, t := range c.Tasks {
		ids[i] = t.ID
	}
	return ids
}

// FindTask locates a task by ID across columns
func FindTask(columns []Column, taskID string) (col, row int, ok bool) {
	for ci, c := range columns {
		for ti, t := range c.Tasks {
			if t.ID == taskID {
				return ci, ti, true
			}
		}
	}
	return 0, 0, false
}
