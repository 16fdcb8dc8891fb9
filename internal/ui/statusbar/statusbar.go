// Package statusbar renders the bottom status line.
package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"slate/internal/types"
	"slate/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode     types.Mode
	filter   string
	sprint   string
	selected int
	width    int
	styles   *styles.Styles
}

// New creates a new StatusBar
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithFilter sets the active filter string displayed in the bar
func (sb StatusBar) WithFilter(filter string) StatusBar {
	sb.filter = filter
	return sb
}

// WithSprint sets the current sprint name displayed in the bar
func (sb StatusBar) WithSprint(name string) StatusBar {
	sb.sprint = name
	return sb
}

// WithSelection sets the selected-task count displayed in the bar
func (sb StatusBar) WithSelection(count int) StatusBar {
	sb.selected = count
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")
	separator := sb.styles.StatusHint.Render(" │ ")

	segments := []string{modeBadge}
	if sb.sprint != "" {
		segments = append(segments, separator, sb.styles.StatusInfo.Render(sb.sprint))
	}
	if sb.filter != "" {
		segments = append(segments, separator, sb.styles.StatusFilter.Render("/"+sb.filter))
	}
	if sb.selected > 0 {
		segments = append(segments, separator, sb.styles.StatusInfo.Render(fmt.Sprintf("%d selected", sb.selected)))
	}
	if hints := GetHints(sb.mode); hints != "" {
		segments = append(segments, separator, sb.styles.StatusHint.Render(hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, segments...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
