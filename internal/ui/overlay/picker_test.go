package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestColumnPickerEnterSelectsCursor(t *testing.T) {
	picker := NewColumnPicker("move", "Move to", []string{"Backlog", "Doing", "Done"})

	model, _ := picker.Update(keyMsg("j"))
	picker = model.(*ColumnPicker)
	_, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a selection")
	}

	msg, ok := cmd().(ColumnSelectedMsg)
	if !ok {
		t.Fatalf("expected ColumnSelectedMsg, got %T", cmd())
	}
	if msg.Key != "move" || msg.Column != "Doing" {
		t.Errorf("got %+v", msg)
	}
}

func TestColumnPickerNumberKey(t *testing.T) {
	picker := NewColumnPicker("bulk-move", "Move to", []string{"Backlog", "Doing", "Done"})

	_, cmd := picker.Update(keyMsg("3"))
	msg := cmd().(ColumnSelectedMsg)
	if msg.Column != "Done" {
		t.Errorf("Column = %q, want Done", msg.Column)
	}

	// Out-of-range numbers do nothing
	if _, cmd := picker.Update(keyMsg("9")); cmd != nil {
		t.Error("out-of-range number should not emit")
	}
}

func TestQuickInputSubmit(t *testing.T) {
	q := NewQuickInput("due", "Due date", "09/03/2025", "")

	model, _ := q.Update(keyMsg("1"))
	q = model.(*QuickInput)
	_, cmd := q.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit the value")
	}

	// Batch of QuickInputMsg + CloseOverlayMsg
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected tea.BatchMsg, got %T", cmd())
	}
	found := false
	for _, c := range batch {
		if msg, ok := c().(QuickInputMsg); ok {
			found = true
			if msg.Field != "due" || msg.Value != "1" {
				t.Errorf("got %+v", msg)
			}
		}
	}
	if !found {
		t.Error("batch missing QuickInputMsg")
	}
}
