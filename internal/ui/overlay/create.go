package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TaskCreatedMsg is emitted when the create form is submitted
type TaskCreatedMsg struct {
	Name        string
	Description string
	Priority    int
	Due         string // raw date text, parsed by the receiver
}

// CreateTaskOverlay provides a form to create a new task
type CreateTaskOverlay struct {
	name        textinput.Model
	description textarea.Model
	due         textinput.Model
	priority    int
	focusIndex  int
	styles      *Styles
}

const (
	focusName = iota
	focusDescription
	focusDue
	focusPriority
	focusSubmit
	focusCount
)

// NewCreateTaskOverlay creates a new task creation overlay
func NewCreateTaskOverlay() *CreateTaskOverlay {
	ni := textinput.New()
	ni.Placeholder = "Task name..."
	ni.Focus()
	ni.CharLimit = 200
	ni.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Description (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(4)

	di := textinput.New()
	di.Placeholder = "Due date, e.g. 09/03/2025 (optional)"
	di.CharLimit = 30
	di.Width = 40

	return &CreateTaskOverlay{
		name:        ni,
		description: ta,
		due:         di,
		styles:      New(),
	}
}

// Init initializes the overlay
func (c *CreateTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (c *CreateTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return c, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return c, c.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				c.focusIndex = (c.focusIndex + 1) % focusCount
			} else {
				c.focusIndex = (c.focusIndex - 1 + focusCount) % focusCount
			}
			c.name.Blur()
			c.description.Blur()
			c.due.Blur()
			switch c.focusIndex {
			case focusName:
				c.name.Focus()
			case focusDescription:
				c.description.Focus()
			case focusDue:
				c.due.Focus()
			}
			return c, nil

		case "enter":
			if c.focusIndex == focusSubmit {
				return c, c.submit()
			}
			// Let the active field handle enter (textarea newline)
		}

		if c.focusIndex == focusPriority {
			switch msg.String() {
			case "0", "1", "2", "3", "4":
				c.priority = int(msg.String()[0] - '0')
				return c, nil
			case "j", "down":
				if c.priority > 0 {
					c.priority--
				}
				return c, nil
			case "k", "up":
				if c.priority < 4 {
					c.priority++
				}
				return c, nil
			}
		}
	}

	var cmd tea.Cmd
	switch c.focusIndex {
	case focusName:
		c.name, cmd = c.name.Update(msg)
	case focusDescription:
		c.description, cmd = c.description.Update(msg)
	case focusDue:
		c.due, cmd = c.due.Update(msg)
	}
	return c, cmd
}

func (c *CreateTaskOverlay) submit() tea.Cmd {
	name := strings.TrimSpace(c.name.Value())
	if name == "" {
		return nil
	}
	msg := TaskCreatedMsg{
		Name:        name,
		Description: c.description.Value(),
		Priority:    c.priority,
		Due:         strings.TrimSpace(c.due.Value()),
	}
	return func() tea.Msg { return msg }
}

// View renders the form
func (c *CreateTaskOverlay) View() string {
	label := func(text string, focused bool) string {
		if focused {
			return c.styles.MenuItemActive.Render(text)
		}
		return c.styles.MenuHeader.Render(text)
	}

	priorityText := fmt.Sprintf("P%d", c.priority)
	if c.priority == 0 {
		priorityText = "none"
	}

	submitStyle := c.styles.MenuItem
	if c.focusIndex == focusSubmit {
		submitStyle = c.styles.MenuItemActive
	}

	sections := []string{
		label("Name", c.focusIndex == focusName),
		c.name.View(),
		"",
		label("Description", c.focusIndex == focusDescription),
		c.description.View(),
		"",
		label("Due", c.focusIndex == focusDue),
		c.due.View(),
		"",
		label("Priority", c.focusIndex == focusPriority) + "  " + c.styles.MenuItem.Render(priorityText),
		"",
		submitStyle.Render("[ Create ]"),
		"",
		c.styles.Footer.Render("Tab: next field • Ctrl+S: create • Esc: cancel"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Title returns the overlay title
func (c *CreateTaskOverlay) Title() string {
	return "New Task"
}

// Size returns the overlay dimensions
func (c *CreateTaskOverlay) Size() (width, height int) {
	return 66, 20
}
