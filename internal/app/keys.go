package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"slate/internal/domain"
	"slate/internal/ui/board"
	"slate/internal/ui/overlay"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	if msg.String() == "esc" && m.mode != ModeNormal {
		m.mode = ModeNormal
		m.selected.Clear()
		return m, nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeGoto:
		return m.handleGotoMode(msg)
	case ModeSelect:
		return m.handleSelectMode(msg)
	default:
		return m, nil
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Vertical navigation
	case "j", "down":
		m.nav.MoveDown(columns)
		return m, nil

	case "k", "up":
		m.nav.MoveUp(columns)
		return m, nil

	// Horizontal navigation
	case "h", "left":
		m.nav.MoveLeft(columns)
		return m, nil

	case "l", "right":
		m.nav.MoveRight(columns)
		return m, nil

	case "ctrl+d":
		m.nav.HalfPageDown(columns, m.halfPage())
		return m, nil

	case "ctrl+u":
		m.nav.HalfPageUp(columns, m.halfPage())
		return m, nil

	// Mode switches
	case "g":
		m.mode = ModeGoto
		return m, nil

	case "v":
		m.mode = ModeSelect
		return m, nil

	case "/":
		m.mode = ModeSearch
		return m, m.overlayStack.Push(overlay.NewSearchOverlay(m.filter))

	case ",":
		col := m.nav.CurrentColumnTitle(columns)
		if col == "" {
			return m, nil
		}
		var rules []domain.SortRule
		if c, ok := m.snap.Index.Column(col); ok {
			rules = c.Sort
		}
		return m, m.overlayStack.Push(overlay.NewSortMenu(col, rules))

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())

	case "c":
		return m, m.overlayStack.Push(overlay.NewCreateTaskOverlay())

	case "r":
		return m, m.refreshCmd()

	// Single-task operations
	case "m":
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		m.pending = []string{task.ID}
		return m, m.overlayStack.Push(overlay.NewColumnPicker("move", "Move "+task.Name, m.snap.Index.ColumnNames()))

	case "H":
		return m.quickMove(columns, -1)

	case "L":
		return m.quickMove(columns, 1)

	case "J":
		return m.reorder(columns, 1)

	case "K":
		return m.reorder(columns, -1)

	case "d":
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		m.pending = []string{task.ID}
		dialog := overlay.NewConfirmDialog("archive", "Archive Task",
			fmt.Sprintf("Archive %q? It will disappear from the board.", task.Name))
		return m, m.overlayStack.Push(dialog)

	case "p":
		return m.adjustPriority(columns, -1)

	case "P":
		return m.adjustPriority(columns, 1)

	case "+", "=":
		return m.adjustProgress(columns, 0.1)

	case "-", "_":
		return m.adjustProgress(columns, -0.1)

	case "D":
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		m.pending = []string{task.ID}
		current := ""
		if task.Metadata.Due != nil {
			current = task.Metadata.Due.Format(domain.DefaultDateFormat)
		}
		return m, m.overlayStack.Push(overlay.NewQuickInput("due", "Due date", "DD/MM/YYYY, empty clears", current))

	case "t":
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		m.pending = []string{task.ID}
		return m, m.overlayStack.Push(overlay.NewQuickInput("tags", "Tags", "comma, separated", strings.Join(task.Metadata.Tags, ", ")))

	case "s":
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		now := m.now()
		return m, m.quickUpdateCmd(task.ID, "marked started", func(t *domain.Task) error {
			t.Metadata.Started = &now
			return nil
		})

	case "S":
		name := ""
		if m.snap.Index.Sprint != nil {
			name = m.snap.Index.Sprint.Name
		}
		return m, m.overlayStack.Push(overlay.NewQuickInput("sprint", "Start sprint", "sprint name", name))
	}

	return m, nil
}

// quickMove moves the current task one visible column left or right.
// Column changes ride the same path as an explicit move, so landing in
// a completed column still reschedules recurring tasks.
func (m Model) quickMove(columns []board.Column, delta int) (tea.Model, tea.Cmd) {
	task := m.nav.GetCurrentTask(columns)
	if task == nil {
		return m, nil
	}
	pos := m.nav.GetPosition(columns)
	target := pos.Column + delta
	if target < 0 || target >= len(columns) {
		return m, nil
	}
	return m, m.moveCmd([]string{task.ID}, columns[target].Title)
}

// reorder nudges the current task up or down within its column
func (m Model) reorder(columns []board.Column, delta int) (tea.Model, tea.Cmd) {
	task := m.nav.GetCurrentTask(columns)
	if task == nil {
		return m, nil
	}
	pos := m.nav.GetPosition(columns)
	newRow := pos.Task + delta
	if newRow < 0 || newRow >= len(columns[pos.Column].Tasks) {
		return m, nil
	}

	// Optimistic local splice; the next accepted refresh supersedes it
	if col, ok := m.snap.Index.Column(columns[pos.Column].Title); ok {
		ids := col.Tasks
		for i, id := range ids {
			if id == task.ID && i+delta >= 0 && i+delta < len(ids) {
				ids[i], ids[i+delta] = ids[i+delta], ids[i]
				break
			}
		}
	}

	return m, m.placeCmd(task.ID, columns[pos.Column].Title, newRow)
}

// blockDrag moves the whole selection one slot up or down within the
// current column, as one contiguous block. Optimistic local splice; the
// next accepted refresh supersedes it.
func (m Model) blockDrag(columns []board.Column, delta int) (tea.Model, tea.Cmd) {
	pos := m.nav.GetPosition(columns)
	if pos.Column < 0 || pos.Column >= len(columns) {
		return m, nil
	}
	col, ok := m.snap.Index.Column(columns[pos.Column].Title)
	if !ok {
		return m, nil
	}

	// Drop index is the block's position among the unselected tasks.
	drop := -1
	unselected := 0
	for _, id := range col.Tasks {
		if m.selected.Selected(id) {
			if drop < 0 {
				drop = unselected
			}
		} else {
			unselected++
		}
	}
	if drop < 0 {
		return m, nil
	}
	drop += delta
	if drop < 0 {
		drop = 0
	}
	if drop > unselected {
		drop = unselected
	}

	reordered := m.selected.Splice(col.Tasks, drop)
	copy(col.Tasks, reordered)

	blockLen := len(col.Tasks) - unselected
	block := append([]string(nil), reordered[drop:drop+blockLen]...)
	return m, m.placeBlockCmd(block, col.Name, drop)
}

func (m Model) adjustPriority(columns []board.Column, delta int) (tea.Model, tea.Cmd) {
	task := m.nav.GetCurrentTask(columns)
	if task == nil {
		return m, nil
	}
	return m, m.quickUpdateCmd(task.ID, "", func(t *domain.Task) error {
		p := t.Metadata.Priority + delta
		if p < 0 {
			p = 0
		}
		t.Metadata.Priority = p
		return nil
	})
}

func (m Model) adjustProgress(columns []board.Column, delta float64) (tea.Model, tea.Cmd) {
	task := m.nav.GetCurrentTask(columns)
	if task == nil {
		return m, nil
	}
	return m, m.quickUpdateCmd(task.ID, "", func(t *domain.Task) error {
		p := t.Metadata.Progress + delta
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		t.Metadata.Progress = p
		return nil
	})
}

// handleGotoMode processes keyboard input in goto mode
func (m Model) handleGotoMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()
	// Always return to normal mode after processing
	m.mode = ModeNormal

	switch msg.String() {
	case "g":
		m.nav.GotoTop(columns)
	case "e":
		m.nav.GotoBottom(columns)
	case "h":
		m.nav.GotoFirstColumn(columns)
	case "l":
		m.nav.GotoLastColumn(columns)
	}

	return m, nil
}

// handleSelectMode processes keyboard input in select mode
func (m Model) handleSelectMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()
	task := m.nav.GetCurrentTask(columns)
	pos := m.nav.GetPosition(columns)

	switch msg.String() {
	case "j", "down":
		m.nav.MoveDown(columns)
		return m, nil

	case "k", "up":
		m.nav.MoveUp(columns)
		return m, nil

	case "h", "left":
		m.nav.MoveLeft(columns)
		return m, nil

	case "l", "right":
		m.nav.MoveRight(columns)
		return m, nil

	// Toggle selection, anchor follows
	case " ":
		if task != nil {
			m.selected.Toggle(task.ID, columns[pos.Column].Title, pos.Task)
		}
		return m, nil

	// Extend from anchor to cursor (shift-click semantics)
	case "V":
		if task != nil {
			view := columns[pos.Column].TaskIDs()
			m.selected.ExtendTo(task.ID, columns[pos.Column].Title, pos.Task, view)
		}
		return m, nil

	// Select all in current column
	case "a":
		if pos.Column < len(columns) {
			for _, t := range columns[pos.Column].Tasks {
				m.selected.Add(t.ID)
			}
		}
		return m, nil

	// Select all visible tasks
	case "A":
		for _, col := range columns {
			for _, t := range col.Tasks {
				m.selected.Add(t.ID)
			}
		}
		return m, nil

	case "x":
		m.selected.Clear()
		return m, nil

	// Drag the selected block within the current column
	case "J":
		return m.blockDrag(columns, 1)

	case "K":
		return m.blockDrag(columns, -1)

	// Bulk move
	case "m":
		if m.selected.Empty() {
			return m, nil
		}
		m.pending = m.selected.Ordered(&m.snap)
		title := fmt.Sprintf("Move %d tasks", len(m.pending))
		return m, m.overlayStack.Push(overlay.NewColumnPicker("bulk-move", title, m.snap.Index.ColumnNames()))

	// Bulk archive
	case "d":
		if m.selected.Empty() {
			return m, nil
		}
		m.pending = m.selected.Ordered(&m.snap)
		dialog := overlay.NewConfirmDialog("bulk-archive", "Archive Tasks",
			fmt.Sprintf("Archive %d selected tasks?", len(m.pending)))
		return m, m.overlayStack.Push(dialog)
	}

	return m, nil
}

// handleOverlayKey routes keyboard messages to the overlay stack
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	if m.overlayStack.IsEmpty() && m.mode == ModeSearch {
		m.mode = ModeNormal
	}
	return m, cmd
}
