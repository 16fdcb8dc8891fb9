// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"slate/internal/bulk"
	"slate/internal/config"
	"slate/internal/domain"
	"slate/internal/query"
	"slate/internal/refresh"
	"slate/internal/selection"
	"slate/internal/services/navigation"
	"slate/internal/types"
	"slate/internal/ui/board"
	"slate/internal/ui/overlay"
	"slate/internal/ui/statusbar"
	"slate/internal/ui/styles"
	"slate/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeSelect = types.ModeSelect
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Store is the task store surface the TUI needs
type Store interface {
	GetAll(ctx context.Context) (domain.Snapshot, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Create(ctx context.Context, t domain.Task) (string, error)
	Update(ctx context.Context, t domain.Task) error
	Move(ctx context.Context, id, column string) error
	Place(ctx context.Context, id, column string, position int) error
	Archive(ctx context.Context, id string) error
	SetColumnSort(ctx context.Context, column string, rules []domain.SortRule) error
	SetSprint(ctx context.Context, sp domain.Sprint) error
}

// Model is the main application state
type Model struct {
	// Board data: last accepted snapshot
	snap   domain.Snapshot
	loaded bool

	// Navigation cursor (ID-based, survives refreshes)
	nav *navigation.Service

	// Editing state
	mode     types.Mode
	filter   string
	selected *selection.Set

	// IDs waiting on a picker or confirm dialog
	pending []string

	// UI state
	overlayStack *overlay.Stack
	toasts       []Toast
	width        int
	height       int
	styles       *styles.Styles

	// Configuration
	config *config.Config

	// Loading state
	loading bool
	spinner spinner.Model

	// Store access
	store Store
	seq   *refresh.Sequencer
	coord *bulk.Coordinator

	// Logger
	logger *slog.Logger

	now func() time.Time
}

// New creates a new application model wired to the given store
func New(cfg *config.Config, st Store, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	seq := refresh.NewSequencer(logger)
	coord := bulk.NewCoordinator(st, seq, logger)

	return Model{
		nav:          navigation.NewService(),
		mode:         ModeNormal,
		selected:     selection.New(),
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		styles:       styles.New(),
		config:       cfg,
		loading:      true,
		spinner:      s,
		store:        st,
		seq:          seq,
		coord:        coord,
		logger:       logger,
		now:          time.Now,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.refreshCmd(),
		tickEvery(m.tickInterval()),
	)
}

func (m Model) tickInterval() time.Duration {
	return time.Duration(m.config.Refresh.Interval()) * time.Millisecond
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		if m.mode == ModeSearch {
			m.mode = ModeNormal
		}
		return m, nil

	case overlay.SearchMsg:
		m.filter = msg.Query
		m.updateMatchCount()
		return m, nil

	case overlay.SortSelectedMsg:
		return m, m.sortCmd(msg.Column, msg.Rules)

	case overlay.ColumnSelectedMsg:
		return m.handleColumnSelected(msg)

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.TaskCreatedMsg:
		m.overlayStack.Pop()
		return m, m.createTaskCmd(msg)

	case overlay.QuickInputMsg:
		return m.handleQuickInput(msg)

	case snapshotMsg:
		return m.handleSnapshot(msg)

	case tickMsg:
		m.expireToasts()
		return m, tea.Batch(
			m.refreshCmd(),
			tickEvery(m.tickInterval()),
		)

	case bulkResultMsg:
		return m.handleBulkResult(msg)

	case taskOpMsg:
		if msg.err != nil {
			m.addToast(Toast{
				Level:   ToastError,
				Message: msg.err.Error(),
				Expires: m.now().Add(8 * time.Second),
			})
			return m, nil
		}
		if msg.note != "" {
			m.addToast(Toast{
				Level:   ToastSuccess,
				Message: msg.note,
				Expires: m.now().Add(3 * time.Second),
			})
		}
		if msg.focus != "" {
			m.nav.SelectTask(msg.focus, 0)
		}
		return m, m.refreshCmd()
	}

	return m, nil
}

func (m Model) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Keep showing the last accepted snapshot; just surface the error
		m.loading = false
		m.addToast(Toast{
			Level:   ToastError,
			Message: fmt.Sprintf("Refresh failed: %v", msg.err),
			Expires: m.now().Add(8 * time.Second),
		})
		return m, nil
	}
	if !msg.applied {
		// Superseded by a later refresh, or suppressed during a batch
		return m, nil
	}

	wasLoading := m.loading
	m.snap = msg.snap
	m.loaded = true
	m.loading = false
	if wasLoading {
		m.addToast(Toast{
			Level:   ToastSuccess,
			Message: fmt.Sprintf("Board loaded: %s", m.snap.Index.Name),
			Expires: m.now().Add(3 * time.Second),
		})
	}
	m.updateMatchCount()
	return m, nil
}

func (m Model) handleBulkResult(msg bulkResultMsg) (tea.Model, tea.Cmd) {
	m.selected.Clear()
	m.pending = nil
	m.mode = ModeNormal

	if msg.err != nil {
		m.addToast(Toast{
			Level:   ToastError,
			Message: fmt.Sprintf("%s: %v", msg.op, msg.err),
			Expires: m.now().Add(8 * time.Second),
		})
	} else {
		note := fmt.Sprintf("%s: %d tasks", msg.op, msg.count)
		if msg.created > 0 {
			note += fmt.Sprintf(" (%d recurring rescheduled)", msg.created)
		}
		m.addToast(Toast{
			Level:   ToastSuccess,
			Message: note,
			Expires: m.now().Add(3 * time.Second),
		})
	}

	// One refresh for the whole batch
	return m, m.refreshCmd()
}

func (m Model) handleColumnSelected(msg overlay.ColumnSelectedMsg) (tea.Model, tea.Cmd) {
	m.overlayStack.Pop()

	switch msg.Key {
	case "move", "bulk-move":
		ids := m.pending
		if len(ids) == 0 {
			return m, nil
		}
		return m, m.moveCmd(ids, msg.Column)
	}
	return m, nil
}

func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.overlayStack.Pop()

	if result, ok := msg.Value.(overlay.ConfirmResult); ok {
		if !result.Confirmed {
			m.pending = nil
			return m, nil
		}
		switch result.Key {
		case "archive", "bulk-archive":
			ids := m.pending
			if len(ids) == 0 {
				return m, nil
			}
			return m, m.archiveCmd(ids)
		}
	}
	return m, nil
}

func (m Model) handleQuickInput(msg overlay.QuickInputMsg) (tea.Model, tea.Cmd) {
	if msg.Field == "sprint" {
		if msg.Value == "" {
			return m, nil
		}
		return m, m.sprintCmd(msg.Value)
	}

	ids := m.pending
	m.pending = nil
	if len(ids) == 0 {
		return m, nil
	}
	taskID := ids[0]

	switch msg.Field {
	case "due":
		if msg.Value == "" {
			return m, m.quickUpdateCmd(taskID, "due cleared", func(t *domain.Task) error {
				t.Metadata.Due = nil
				return nil
			})
		}
		due, err := domain.ParseDate(msg.Value)
		if err != nil {
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Bad date %q (expected DD/MM/YYYY)", msg.Value),
				Expires: m.now().Add(5 * time.Second),
			})
			return m, nil
		}
		return m, m.quickUpdateCmd(taskID, "due updated", func(t *domain.Task) error {
			t.Metadata.Due = &due
			return nil
		})

	case "tags":
		tags := splitTags(msg.Value)
		return m, m.quickUpdateCmd(taskID, "tags updated", func(t *domain.Task) error {
			t.Metadata.Tags = tags
			return nil
		})
	}

	return m, nil
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	columns := m.buildColumns()
	pos := m.nav.GetPosition(columns)
	cursor := board.Cursor{Column: pos.Column, Task: pos.Task}

	selectedMap := make(map[string]bool)
	for _, col := range columns {
		for _, t := range col.Tasks {
			if m.selected.Selected(t.ID) {
				selectedMap[t.ID] = true
			}
		}
	}

	boardView := board.Render(columns, cursor, selectedMap, m.styles, m.width, m.height-2, m.now())

	sb := statusbar.New(m.mode, m.width, m.styles).
		WithFilter(m.filter).
		WithSelection(m.selected.Len())
	if m.snap.Index.Sprint != nil {
		sb = sb.WithSprint(m.snap.Index.Sprint.Name)
	}
	statusBarView := sb.Render()

	view := lipgloss.JoinVertical(lipgloss.Left, boardView, statusBarView)

	// If overlay is open, render it on top (centered)
	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()

		overlayWidth, overlayHeight := current.Size()

		// Width 0 means full width (like the filter bar)
		if overlayWidth == 0 {
			view = lipgloss.JoinVertical(lipgloss.Left, view, overlayView)
		} else {
			title := current.Title()
			if title != "" {
				titleView := m.styles.OverlayTitle.Render(title)
				overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
			}
			overlayView = m.styles.Overlay.
				Width(overlayWidth).
				Height(overlayHeight).
				Render(overlayView)

			centeredOverlay := lipgloss.Place(
				m.width,
				m.height,
				lipgloss.Center,
				lipgloss.Center,
				overlayView,
			)
			view = lipgloss.JoinVertical(lipgloss.Left, view, centeredOverlay)
		}
	}

	// Render toasts in bottom-right corner
	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		toastView := toastRenderer.Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// buildColumns converts the snapshot into visible board columns,
// applying the filter and each column's sort
func (m Model) buildColumns() []board.Column {
	var columns []board.Column
	for _, col := range m.snap.Index.Columns {
		if m.snap.Index.IsHidden(col.Name) {
			continue
		}

		var tasks []domain.Task
		for _, id := range col.Tasks {
			t, ok := m.snap.Task(id)
			if !ok {
				continue
			}
			if m.filter != "" && !query.Matches(t, m.filter, m.snap.Index.Fields, m.now()) {
				continue
			}
			tasks = append(tasks, t)
		}

		if len(col.Sort) > 0 {
			tasks = domain.ApplySort(tasks, col.Sort)
		}

		columns = append(columns, board.Column{Title: col.Name, Tasks: tasks})
	}
	return columns
}

func (m *Model) updateMatchCount() {
	if m.overlayStack.IsEmpty() {
		return
	}
	search, ok := m.overlayStack.Current().(*overlay.SearchOverlay)
	if !ok {
		return
	}
	count := 0
	for _, col := range m.buildColumns() {
		count += len(col.Tasks)
	}
	search.SetMatchCount(count)
}

func (m Model) renderLoading() string {
	loadingText := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.spinner.View(),
		" Loading board...",
	)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		loadingText,
	)
}

func (m *Model) addToast(t Toast) {
	m.toasts = append(m.toasts, t)
}

func (m *Model) expireToasts() {
	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m Model) halfPage() int {
	// Cards are roughly 4 lines tall with borders
	half := (m.height - 2) / 8
	if half < 1 {
		half = 1
	}
	return half
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
