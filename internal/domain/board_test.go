package domain

import "testing"

func testIndex() Index {
	return Index{
		Name: "Project",
		Columns: []Column{
			{Name: "Backlog", Tasks: []string{"a", "b"}},
			{Name: "Doing", Tasks: []string{"c"}},
			{Name: "Done", Tasks: []string{"d"}},
		},
		Hidden:    []string{"Backlog"},
		Started:   []string{"Doing"},
		Completed: []string{"Done"},
	}
}

func TestIndex_ColumnFlags(t *testing.T) {
	ix := testIndex()

	if !ix.IsHidden("Backlog") || ix.IsHidden("Doing") {
		t.Error("IsHidden wrong")
	}
	if !ix.IsStarted("Doing") || ix.IsStarted("Done") {
		t.Error("IsStarted wrong")
	}
	if !ix.IsCompleted("Done") || ix.IsCompleted("Backlog") {
		t.Error("IsCompleted wrong")
	}
}

func TestIndex_Column(t *testing.T) {
	ix := testIndex()

	col, ok := ix.Column("Doing")
	if !ok || col.Name != "Doing" {
		t.Fatal("Column lookup failed")
	}

	// Returned pointer aliases the index, so edits stick.
	col.Tasks = append(col.Tasks, "x")
	if len(ix.Columns[1].Tasks) != 2 {
		t.Error("Column should return a pointer into the index")
	}

	if _, ok := ix.Column("Nope"); ok {
		t.Error("unknown column should not be found")
	}
}

func TestSnapshot_Position(t *testing.T) {
	snap := Snapshot{Index: testIndex()}

	tests := []struct {
		id       string
		col, row int
		ok       bool
	}{
		{"a", 0, 0, true},
		{"b", 0, 1, true},
		{"c", 1, 0, true},
		{"d", 2, 0, true},
		{"zz", 0, 0, false},
	}

	for _, tt := range tests {
		col, row, ok := snap.Position(tt.id)
		if col != tt.col || row != tt.row || ok != tt.ok {
			t.Errorf("Position(%q) = (%d,%d,%v), want (%d,%d,%v)",
				tt.id, col, row, ok, tt.col, tt.row, tt.ok)
		}
	}
}

func TestCustomFieldSchema_Field(t *testing.T) {
	schema := CustomFieldSchema{
		{Name: "Reviewed", Type: FieldBoolean},
		{Name: "weight", Type: FieldNumber},
	}

	f, ok := schema.Field("reviewed")
	if !ok || f.Type != FieldBoolean {
		t.Error("schema lookup should be case-insensitive")
	}
	if _, ok := schema.Field("missing"); ok {
		t.Error("missing field should not be found")
	}
}
