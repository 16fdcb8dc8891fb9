package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ColumnSelectedMsg is emitted when a target column is chosen
type ColumnSelectedMsg struct {
	Key    string
	Column string
}

// ColumnPicker lists board columns for move targets
type ColumnPicker struct {
	key     string
	title   string
	columns []string
	cursor  int
	styles  *Styles
}

// NewColumnPicker creates a picker over the given columns. The key
// identifies which action the selection belongs to.
func NewColumnPicker(key, title string, columns []string) *ColumnPicker {
	return &ColumnPicker{
		key:     key,
		title:   title,
		columns: columns,
		styles:  New(),
	}
}

// Init initializes the picker
func (p *ColumnPicker) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *ColumnPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc", "q":
			return p, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if p.cursor < len(p.columns)-1 {
				p.cursor++
			}
			return p, nil

		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "enter":
			return p, p.emit(p.cursor)

		default:
			// Number keys pick directly
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				idx := int(key[0] - '1')
				if idx < len(p.columns) {
					return p, p.emit(idx)
				}
			}
		}
	}

	return p, nil
}

func (p *ColumnPicker) emit(idx int) tea.Cmd {
	column := p.columns[idx]
	return func() tea.Msg {
		return ColumnSelectedMsg{Key: p.key, Column: column}
	}
}

// View renders the picker
func (p *ColumnPicker) View() string {
	var b strings.Builder

	for i, col := range p.columns {
		style := p.styles.MenuItem
		prefix := "  "
		if i == p.cursor {
			style = p.styles.MenuItemActive
			prefix = "▶ "
		}
		b.WriteString(p.styles.MenuKey.Render(fmt.Sprintf("[%d]", i+1)))
		b.WriteString(" ")
		b.WriteString(style.Render(prefix + col))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.styles.Footer.Render("j/k: move • Enter: select • Esc: cancel"))

	return b.String()
}

// Title returns the picker title
func (p *ColumnPicker) Title() string {
	return p.title
}

// Size returns the picker dimensions
func (p *ColumnPicker) Size() (width, height int) {
	return 40, len(p.columns) + 5
}
