package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"slate/internal/domain"
	"slate/internal/ui/overlay"
)

// snapshotMsg carries the result of a board refresh. applied is false
// when the fetch was superseded by a later refresh or suppressed.
type snapshotMsg struct {
	snap    domain.Snapshot
	applied bool
	err     error
}

type tickMsg time.Time

// bulkResultMsg reports a finished batch operation
type bulkResultMsg struct {
	op      string
	count   int
	created int
	err     error
}

// taskOpMsg reports a finished single-task operation
type taskOpMsg struct {
	op    string
	note  string
	focus string // task to put the cursor on afterwards
	err   error
}

// refreshCmd fetches a fresh snapshot through the sequencer, which
// discards it if a newer refresh was issued meanwhile
func (m Model) refreshCmd() tea.Cmd {
	seq, st := m.seq, m.store
	return func() tea.Msg {
		snap, applied, err := seq.Do(context.Background(), st.GetAll)
		return snapshotMsg{snap: snap, applied: applied, err: err}
	}
}

// tickEvery schedules periodic refresh ticks
func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// moveCmd moves tasks to the target column as one batch. Moves into a
// completed column reschedule recurring tasks.
func (m Model) moveCmd(ids []string, targetColumn string) tea.Cmd {
	coord := m.coord
	snap := m.snap
	return func() tea.Msg {
		created, err := coord.Move(context.Background(), &snap, ids, targetColumn)
		return bulkResultMsg{
			op:      "Moved to " + targetColumn,
			count:   len(ids),
			created: len(created),
			err:     err,
		}
	}
}

// archiveCmd archives tasks as one batch
func (m Model) archiveCmd(ids []string) tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		err := coord.Archive(context.Background(), ids)
		return bulkResultMsg{op: "Archived", count: len(ids), err: err}
	}
}

// placeCmd moves a task to an explicit position within a column
func (m Model) placeCmd(id, column string, position int) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		err := st.Place(context.Background(), id, column, position)
		return taskOpMsg{op: "place", err: err}
	}
}

// placeBlockCmd persists a contiguous block placement. Refreshes are
// suppressed until every task has been placed so an intermediate fetch
// cannot observe a half-moved block.
func (m Model) placeBlockCmd(ids []string, column string, start int) tea.Cmd {
	st, seq := m.store, m.seq
	return func() tea.Msg {
		seq.Suppress()
		defer seq.Resume()
		for i, id := range ids {
			if err := st.Place(context.Background(), id, column, start+i); err != nil {
				return taskOpMsg{op: "place", err: err}
			}
		}
		return taskOpMsg{op: "place"}
	}
}

// quickUpdateCmd applies a field edit with read-modify-write semantics
func (m Model) quickUpdateCmd(id, note string, apply func(*domain.Task) error) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		task, err := st.Get(context.Background(), id)
		if err != nil {
			return taskOpMsg{op: "update", err: err}
		}
		if err := apply(&task); err != nil {
			return taskOpMsg{op: "update", err: err}
		}
		if err := st.Update(context.Background(), task); err != nil {
			return taskOpMsg{op: "update", err: err}
		}
		return taskOpMsg{op: "update", note: note}
	}
}

// createTaskCmd creates a task in the column under the cursor
func (m Model) createTaskCmd(msg overlay.TaskCreatedMsg) tea.Cmd {
	st := m.store

	column := m.nav.CurrentColumnTitle(m.buildColumns())
	if column == "" {
		// Empty board: fall back to the first visible column
		for _, col := range m.snap.Index.Columns {
			if !m.snap.Index.IsHidden(col.Name) {
				column = col.Name
				break
			}
		}
	}

	task := domain.Task{
		Name:        msg.Name,
		Description: msg.Description,
		Column:      column,
	}
	task.Metadata.Priority = msg.Priority
	if msg.Due != "" {
		if due, err := domain.ParseDate(msg.Due); err == nil {
			task.Metadata.Due = &due
		}
	}

	return func() tea.Msg {
		id, err := st.Create(context.Background(), task)
		if err != nil {
			return taskOpMsg{op: "create", err: err}
		}
		return taskOpMsg{
			op:    "create",
			note:  fmt.Sprintf("Task created: %s", id),
			focus: id,
		}
	}
}

// sortCmd persists a column's sort rules
func (m Model) sortCmd(column string, rules []domain.SortRule) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.SetColumnSort(context.Background(), column, rules); err != nil {
			return taskOpMsg{op: "sort", err: err}
		}
		return taskOpMsg{op: "sort"}
	}
}

// sprintCmd starts a new sprint beginning today
func (m Model) sprintCmd(name string) tea.Cmd {
	st := m.store
	start := m.now().Format(domain.DefaultDateFormat)
	return func() tea.Msg {
		sp := domain.Sprint{Name: name, Start: start}
		if err := st.SetSprint(context.Background(), sp); err != nil {
			return taskOpMsg{op: "sprint", err: err}
		}
		return taskOpMsg{op: "sprint", note: "Sprint started: " + name}
	}
}
