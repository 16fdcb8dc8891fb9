package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"slate/internal/domain"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSortMenuSelectsField(t *testing.T) {
	menu := NewSortMenu("Backlog", nil)

	model, cmd := menu.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected a command emitting the sort selection")
	}

	msg, ok := cmd().(SortSelectedMsg)
	if !ok {
		t.Fatalf("expected SortSelectedMsg, got %T", cmd())
	}
	if msg.Column != "Backlog" {
		t.Errorf("Column = %q, want Backlog", msg.Column)
	}
	if len(msg.Rules) != 1 || msg.Rules[0].Field != domain.SortByDue || msg.Rules[0].Order != domain.SortAscending {
		t.Errorf("Rules = %v", msg.Rules)
	}

	// Same key again flips the direction
	menu = model.(*SortMenu)
	_, cmd = menu.Update(keyMsg("d"))
	msg = cmd().(SortSelectedMsg)
	if msg.Rules[0].Order != domain.SortDescending {
		t.Errorf("second press should toggle to descending, got %v", msg.Rules[0].Order)
	}
}

func TestSortMenuClear(t *testing.T) {
	current := []domain.SortRule{{Field: domain.SortByName, Order: domain.SortAscending}}
	menu := NewSortMenu("Done", current)

	_, cmd := menu.Update(keyMsg("x"))
	msg := cmd().(SortSelectedMsg)
	if len(msg.Rules) != 0 {
		t.Errorf("x should clear sort rules, got %v", msg.Rules)
	}
}

func TestSortMenuView(t *testing.T) {
	menu := NewSortMenu("Backlog", []domain.SortRule{{Field: domain.SortByPriority, Order: domain.SortDescending}})
	view := menu.View()

	if !strings.Contains(view, "Priority") {
		t.Error("view missing Priority option")
	}
	if !strings.Contains(view, "↓") {
		t.Error("view missing descending arrow for active field")
	}
	if got := menu.Title(); got != "Sort: Backlog" {
		t.Errorf("Title = %q", got)
	}
}
