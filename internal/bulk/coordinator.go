// Package bulk turns a multi-task selection and one target action into a
// sequence of store calls bracketed by refresh suppression, so a bulk
// operation produces exactly one refresh.
package bulk

import (
	"context"
	"log/slog"
	"time"

	"slate/internal/domain"
	"slate/internal/recurrence"
	"slate/internal/refresh"
)

// Store is the slice of the task store a bulk operation needs.
type Store interface {
	// Move places the task at the end of the target column.
	Move(ctx context.Context, id, column string) error
	Archive(ctx context.Context, id string) error
	Create(ctx context.Context, t domain.Task) (string, error)
}

// Coordinator executes bulk operations best-effort: one failing item does
// not abort the rest of the batch, and the first error is surfaced once at
// the end. Nothing is rolled back.
type Coordinator struct {
	store  Store
	seq    *refresh.Sequencer
	logger *slog.Logger
	now    func() time.Time
}

// NewCoordinator creates a coordinator.
func NewCoordinator(store Store, seq *refresh.Sequencer, logger *slog.Logger) *Coordinator {
	return &Coordinator{store: store, seq: seq, logger: logger, now: time.Now}
}

// Move moves every task in ids to targetColumn, in the given order, then
// runs the recurrence check for each task that landed in a completed
// column. Successor creation is independent of the triggering move and is
// never rolled back by it. The whole sequence runs inside a suppress
// bracket; the caller issues exactly one refresh afterwards.
//
// It returns the IDs of created successor tasks and the first error
// encountered, if any.
func (c *Coordinator) Move(ctx context.Context, snap *domain.Snapshot, ids []string, targetColumn string) ([]string, error) {
	c.seq.Suppress()
	defer c.seq.Resume()

	var created []string
	var firstErr error
	completed := snap.Index.IsCompleted(targetColumn)

	for _, id := range ids {
		if err := c.store.Move(ctx, id, targetColumn); err != nil {
			c.logger.Error("bulk move failed", "task", id, "column", targetColumn, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if !completed {
			continue
		}
		task, ok := snap.Task(id)
		if !ok {
			continue
		}
		next := recurrence.Derive(task, snap.Index, targetColumn, c.now())
		if next == nil {
			continue
		}
		newID, err := c.store.Create(ctx, *next)
		if err != nil {
			c.logger.Error("recurrence successor create failed", "task", id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.logger.Debug("recurrence successor created", "task", id, "successor", newID)
		created = append(created, newID)
	}

	return created, firstErr
}

// Archive archives every task in ids with the same suppress bracket and
// best-effort continuation as Move.
func (c *Coordinator) Archive(ctx context.Context, ids []string) error {
	c.seq.Suppress()
	defer c.seq.Resume()

	var firstErr error
	for _, id := range ids {
		if err := c.store.Archive(ctx, id); err != nil {
			c.logger.Error("bulk archive failed", "task", id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
