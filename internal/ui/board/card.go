package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"slate/internal/domain"
	"slate/internal/ui/styles"
)

// renderCard renders a task card
func renderCard(task domain.Task, isCursor bool, isSelected bool, width int, now time.Time, s *styles.Styles) string {
	// Choose card style based on state
	cardStyle := s.Card
	if isSelected {
		cardStyle = s.CardSelected
	} else if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	// Name line - truncate if needed
	maxNameLen := width - 4
	name := task.Name
	if maxNameLen > 1 && len(name) > maxNameLen {
		name = name[:maxNameLen-1] + "…"
	}
	cursor := ""
	if isCursor {
		cursor = "▶"
	}
	nameLine := cursor + s.TaskName.Render(name)

	// Detail line: priority, due date, progress, tags
	var parts []string
	if task.Metadata.Priority > 0 {
		badge := s.PriorityBadge(task.Metadata.Priority).Render(fmt.Sprintf("P%d", task.Metadata.Priority))
		parts = append(parts, badge)
	}
	if task.Metadata.Due != nil {
		dueStyle := s.TaskDue
		if task.Metadata.Completed == nil && task.Metadata.Due.Before(now) {
			dueStyle = s.TaskOverdue
		}
		parts = append(parts, dueStyle.Render(task.Metadata.Due.Format(domain.DefaultDateFormat)))
	}
	if task.Metadata.Progress > 0 {
		parts = append(parts, s.TaskProgress.Render(fmt.Sprintf("%d%%", int(task.Metadata.Progress*100))))
	}
	for _, tag := range task.Metadata.Tags {
		parts = append(parts, s.TaskTag.Render("#"+tag))
	}
	if len(task.Subtasks) > 0 {
		done := 0
		for _, st := range task.Subtasks {
			if st.Completed {
				done++
			}
		}
		parts = append(parts, s.TaskDue.Render(fmt.Sprintf("☑ %d/%d", done, len(task.Subtasks))))
	}

	if len(parts) == 0 {
		return cardStyle.Render(nameLine)
	}
	detailLine := strings.Join(parts, " ")
	content := lipgloss.JoinVertical(lipgloss.Left, nameLine, detailLine)
	return cardStyle.Render(content)
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, isSelected bool, width int, now time.Time, s *styles.Styles) string {
	return renderCard(task, isCursor, isSelected, width, now, s)
}
