package board

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"slate/internal/ui/styles"
)

// renderColumn renders a kanban column with header and task cards
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	selectedTasks map[string]bool,
	width int,
	height int,
	now time.Time,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Render header with title (e.g., "─ Backlog ─────")
	headerText := "─ " + col.Title + " "
	remainingWidth := width - len(headerText) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	var cardStrings []string
	cardWidth := width - 4
	for i, task := range col.Tasks {
		isCursor := isActive && i == cursorTask
		isSelected := selectedTasks[task.ID]
		cardStrings = append(cardStrings, renderCard(task, isCursor, isSelected, cardWidth, now, s))
	}

	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
