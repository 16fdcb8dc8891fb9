// Package refresh serializes full-board refreshes. Every refresh gets an
// epoch from a monotonically increasing counter; a response is applied only
// if its epoch is still the newest when it lands, so a slow early fetch can
// never clobber the result of a later one. A suppress flag holds refreshes
// back during multi-step bulk operations.
package refresh

import (
	"context"
	"log/slog"
	"sync"

	"slate/internal/domain"
)

// FetchFunc fetches a full board snapshot from the task store.
type FetchFunc func(ctx context.Context) (domain.Snapshot, error)

// Sequencer owns the refresh epoch counter and the suppress flag.
//
// The board itself is single-threaded, but fetches run on their own
// goroutines, so the counter is guarded by a mutex.
type Sequencer struct {
	mu         sync.Mutex
	epoch      uint64
	suppressed bool
	logger     *slog.Logger
}

// NewSequencer creates a sequencer.
func NewSequencer(logger *slog.Logger) *Sequencer {
	return &Sequencer{logger: logger}
}

// Next issues a new refresh epoch. It returns false while suppressed; the
// caller must then skip the fetch entirely.
func (s *Sequencer) Next() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suppressed {
		s.logger.Debug("refresh suppressed")
		return 0, false
	}
	s.epoch++
	return s.epoch, true
}

// Current returns the newest issued epoch.
func (s *Sequencer) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Accept reports whether a response for the given epoch may update visible
// state: only the most recently issued refresh wins, regardless of the
// order completions arrive in.
func (s *Sequencer) Accept(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.logger.Debug("stale refresh discarded", "epoch", epoch, "current", s.epoch)
		return false
	}
	return true
}

// Suppress brackets the start of a bulk sequence: refreshes requested while
// suppressed are no-ops.
func (s *Sequencer) Suppress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressed = true
}

// Resume ends a suppress bracket. The caller issues exactly one refresh
// afterwards.
func (s *Sequencer) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressed = false
}

// Suppressed reports whether refreshes are currently held back.
func (s *Sequencer) Suppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppressed
}

// Do runs one complete refresh: take an epoch, fetch, and gate the result.
// applied is false when the refresh was suppressed or superseded by a newer
// one; err is set only for fetch failures, which leave displayed state to
// the caller untouched.
func (s *Sequencer) Do(ctx context.Context, fetch FetchFunc) (snap domain.Snapshot, applied bool, err error) {
	epoch, ok := s.Next()
	if !ok {
		return domain.Snapshot{}, false, nil
	}
	snap, err = fetch(ctx)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, s.Accept(epoch), nil
}
