package domain

import "strings"

// FieldType is the declared type of a custom field.
type FieldType string

const (
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
	FieldNumber  FieldType = "number"
	FieldString  FieldType = "string"
)

// CustomFieldDef declares one custom field on the board.
type CustomFieldDef struct {
	Name string    `json:"name" yaml:"name"`
	Type FieldType `json:"type" yaml:"type"`
}

// CustomFieldSchema is the board's ordered set of custom field definitions.
type CustomFieldSchema []CustomFieldDef

// Field looks up a definition by name, case-insensitively.
func (s CustomFieldSchema) Field(name string) (CustomFieldDef, bool) {
	for _, f := range s {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return CustomFieldDef{}, false
}

// Sprint is the board's current sprint, set via the sprint command.
type Sprint struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start,omitempty"`
}

// Column is one board column: its name, the ordered task IDs it holds, and
// an optional persisted sort.
type Column struct {
	Name  string     `json:"name"`
	Tasks []string   `json:"tasks"`
	Sort  []SortRule `json:"sort,omitempty"`
}

// Index is the board index: ordered columns plus board-wide options.
// Column order defines both membership and intra-column order.
type Index struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Columns     []Column          `json:"columns"`
	Hidden      []string          `json:"hidden,omitempty"`
	Started     []string          `json:"started,omitempty"`
	Completed   []string          `json:"completed,omitempty"`
	DateFormat  string            `json:"dateFormat,omitempty"`
	Fields      CustomFieldSchema `json:"fields,omitempty"`
	Sprint      *Sprint           `json:"sprint,omitempty"`
}

// Column finds a column by name.
func (ix *Index) Column(name string) (*Column, bool) {
	for i := range ix.Columns {
		if ix.Columns[i].Name == name {
			return &ix.Columns[i], true
		}
	}
	return nil, false
}

// ColumnNames returns the ordered column names.
func (ix *Index) ColumnNames() []string {
	names := make([]string, len(ix.Columns))
	for i, c := range ix.Columns {
		names[i] = c.Name
	}
	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// IsHidden reports whether the column is hidden from the board view.
func (ix *Index) IsHidden(name string) bool { return contains(ix.Hidden, name) }

// IsStarted reports whether moving a task into the column starts it.
func (ix *Index) IsStarted(name string) bool { return contains(ix.Started, name) }

// IsCompleted reports whether moving a task into the column completes it.
func (ix *Index) IsCompleted(name string) bool { return contains(ix.Completed, name) }

// Snapshot is one consistent view of the board: the index plus every
// unarchived task, hydrated, in snapshot order (column order, then
// intra-column order).
type Snapshot struct {
	Index Index  `json:"index"`
	Tasks []Task `json:"tasks"`
}

// Task finds a task in the snapshot by ID.
func (s *Snapshot) Task(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Position returns a task's position in snapshot order: the index of its
// column and its index within that column. Used to give bulk operations a
// deterministic iteration order.
func (s *Snapshot) Position(id string) (col, row int, ok bool) {
	for ci, c := range s.Index.Columns {
		for ri, tid := range c.Tasks {
			if tid == id {
				return ci, ri, true
			}
		}
	}
	return 0, 0, false
}
