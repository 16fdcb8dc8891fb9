package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// HelpOverlay shows the keybinding reference
type HelpOverlay struct {
	styles *Styles
}

type helpEntry struct {
	key  string
	desc string
}

type helpSection struct {
	header  string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		header: "Navigation",
		entries: []helpEntry{
			{"h/l", "previous / next column"},
			{"j/k", "previous / next task"},
			{"ctrl+d/u", "half page down / up"},
			{"g", "goto mode (g: top, e: end, h/l: first/last column)"},
		},
	},
	{
		header: "Tasks",
		entries: []helpEntry{
			{"c", "create task"},
			{"m", "move task to column"},
			{"H/L", "move task one column left / right"},
			{"J/K", "reorder task within column"},
			{"d", "archive task"},
			{"p/P", "priority down / up"},
			{"+/-", "progress up / down"},
			{"D", "set due date"},
			{"t", "edit tags"},
			{"s", "mark started"},
		},
	},
	{
		header: "Board",
		entries: []helpEntry{
			{"/", "filter tasks"},
			{",", "sort current column"},
			{"v", "select mode"},
			{"r", "refresh now"},
		},
	},
	{
		header: "Select mode",
		entries: []helpEntry{
			{"space", "toggle task"},
			{"V", "extend selection to cursor"},
			{"a / A", "select column / all visible"},
			{"J/K", "drag selection down / up"},
			{"m", "move selected"},
			{"d", "archive selected"},
			{"x", "clear selection"},
		},
	},
}

// NewHelpOverlay creates the help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{styles: New()}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return h, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}
	return h, nil
}

// View renders the keybinding reference
func (h *HelpOverlay) View() string {
	var b strings.Builder

	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.styles.MenuHeader.Render(section.header))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString("  ")
			b.WriteString(h.styles.MenuKey.Render(pad(e.key, 10)))
			b.WriteString(h.styles.MenuItem.Render(e.desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(h.styles.Footer.Render("Esc to close"))

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	lines := 2
	for _, s := range helpSections {
		lines += len(s.entries) + 2
	}
	return 64, lines
}
