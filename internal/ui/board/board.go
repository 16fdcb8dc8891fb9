// Package board renders the kanban board view.
package board

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"slate/internal/ui/styles"
)

// Render renders the kanban board with all visible columns
func Render(
	columns []Column,
	cursor Cursor,
	selectedTasks map[string]bool,
	s *styles.Styles,
	width int,
	height int,
	now time.Time,
) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(col, cursorTask, isActive, selectedTasks, columnWidth, height, now, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
