package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// mockOverlay is a simple overlay implementation for testing
type mockOverlay struct {
	title  string
	width  int
	height int
	value  string
}

func (m mockOverlay) Init() tea.Cmd {
	return nil
}

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, func() tea.Msg {
				return SelectionMsg{Key: "test", Value: m.value}
			}
		}
		if msg.String() == "esc" {
			return m, func() tea.Msg {
				return CloseOverlayMsg{}
			}
		}
	}
	return m, nil
}

func (m mockOverlay) View() string {
	return m.title
}

func (m mockOverlay) Title() string {
	return m.title
}

func (m mockOverlay) Size() (width, height int) {
	return m.width, m.height
}

func TestNewStack(t *testing.T) {
	stack := NewStack()
	if stack == nil {
		t.Fatal("NewStack returned nil")
	}
	if !stack.IsEmpty() {
		t.Error("New stack should be empty")
	}
}

func TestStackPushPop(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "first"})
	stack.Push(mockOverlay{title: "second"})

	if stack.IsEmpty() {
		t.Fatal("stack should not be empty after pushes")
	}
	if got := stack.Current().Title(); got != "second" {
		t.Errorf("Current = %q, want second", got)
	}

	popped := stack.Pop()
	if popped.Title() != "second" {
		t.Errorf("Pop = %q, want second", popped.Title())
	}
	if got := stack.Current().Title(); got != "first" {
		t.Errorf("Current after pop = %q, want first", got)
	}
}

func TestStackUpdateClosesOnCloseMsg(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "only"})

	stack.Update(CloseOverlayMsg{})
	if !stack.IsEmpty() {
		t.Error("CloseOverlayMsg should pop the overlay")
	}
}

func TestStackClear(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "a"})
	stack.Push(mockOverlay{title: "b"})

	stack.Clear()
	if !stack.IsEmpty() {
		t.Error("Clear should empty the stack")
	}
	if stack.Pop() != nil {
		t.Error("Pop on empty stack should return nil")
	}
}
