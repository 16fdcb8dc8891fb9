package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"slate/internal/domain"
)

// SortSelectedMsg is emitted when the sort for a column changes
type SortSelectedMsg struct {
	Column string
	Rules  []domain.SortRule
}

// SortOption represents a sort option with metadata
type SortOption struct {
	Key   string
	Label string
	Field domain.SortField
}

// SortMenu is a menu overlay for a column's sort configuration
type SortMenu struct {
	column  string
	rules   []domain.SortRule
	options []SortOption
	styles  *Styles
}

// NewSortMenu creates a new sort menu for the given column
func NewSortMenu(column string, current []domain.SortRule) *SortMenu {
	rules := make([]domain.SortRule, len(current))
	copy(rules, current)

	return &SortMenu{
		column: column,
		rules:  rules,
		styles: New(),
		options: []SortOption{
			{Key: "n", Label: "Name", Field: domain.SortByName},
			{Key: "c", Label: "Created", Field: domain.SortByCreated},
			{Key: "u", Label: "Updated", Field: domain.SortByUpdated},
			{Key: "s", Label: "Started", Field: domain.SortByStarted},
			{Key: "d", Label: "Due", Field: domain.SortByDue},
			{Key: "e", Label: "Completed", Field: domain.SortByCompleted},
			{Key: "p", Label: "Priority", Field: domain.SortByPriority},
			{Key: "g", Label: "Progress", Field: domain.SortByProgress},
			{Key: "a", Label: "Assignee", Field: domain.SortByAssignee},
		},
	}
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc", "q":
			return m, func() tea.Msg { return CloseOverlayMsg{} }

		case "x":
			// Clear the column sort, back to manual order
			m.rules = nil
			return m, m.emit()

		default:
			for _, opt := range m.options {
				if opt.Key == key {
					m.toggle(opt.Field)
					return m, m.emit()
				}
			}
		}
	}

	return m, nil
}

// toggle selects a field, or flips direction when it is already primary
func (m *SortMenu) toggle(field domain.SortField) {
	if len(m.rules) > 0 && m.rules[0].Field == field {
		if m.rules[0].Order == domain.SortAscending {
			m.rules[0].Order = domain.SortDescending
		} else {
			m.rules[0].Order = domain.SortAscending
		}
		return
	}
	m.rules = []domain.SortRule{{Field: field, Order: domain.SortAscending}}
}

func (m *SortMenu) emit() tea.Cmd {
	rules := make([]domain.SortRule, len(m.rules))
	copy(rules, m.rules)
	return func() tea.Msg {
		return SortSelectedMsg{Column: m.column, Rules: rules}
	}
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	for _, opt := range m.options {
		isActive := len(m.rules) > 0 && m.rules[0].Field == opt.Field

		keyStyle := m.styles.MenuKey
		labelStyle := m.styles.MenuItem
		if isActive {
			labelStyle = m.styles.MenuItemActive
		} else {
			keyStyle = m.styles.MenuItem
		}

		b.WriteString(keyStyle.Render("[" + opt.Key + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(opt.Label))

		if isActive {
			arrow := "↑"
			if m.rules[0].Order == domain.SortDescending {
				arrow = "↓"
			}
			b.WriteString(" ")
			b.WriteString(m.styles.MenuItemActive.Render("● " + arrow))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := m.styles.Footer.Render("Same key toggles direction • x: manual order • Esc to close")
	b.WriteString(footer)

	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort: " + m.column
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 50, len(m.options) + 5
}
