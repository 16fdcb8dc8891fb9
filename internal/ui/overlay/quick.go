package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// QuickInputMsg carries the submitted value of a quick edit field
type QuickInputMsg struct {
	Field string
	Value string
}

// QuickInput is a one-line prompt overlay for fast metadata edits
// (due date, progress, tags and the like)
type QuickInput struct {
	field string
	title string
	input textinput.Model
}

// NewQuickInput creates a prompt for the given field, seeded with the
// current value
func NewQuickInput(field, title, placeholder, current string) *QuickInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.SetValue(current)
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	return &QuickInput{
		field: field,
		title: title,
		input: ti,
	}
}

// Init implements tea.Model
func (q *QuickInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (q *QuickInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			value := q.input.Value()
			return q, tea.Batch(
				func() tea.Msg { return QuickInputMsg{Field: q.field, Value: value} },
				func() tea.Msg { return CloseOverlayMsg{} },
			)

		case tea.KeyEsc:
			return q, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}

	var cmd tea.Cmd
	q.input, cmd = q.input.Update(msg)
	return q, cmd
}

// View implements tea.Model
func (q *QuickInput) View() string {
	return q.input.View()
}

// Title implements Overlay
func (q *QuickInput) Title() string {
	return q.title
}

// Size implements Overlay
func (q *QuickInput) Size() (width, height int) {
	return 50, 3
}
