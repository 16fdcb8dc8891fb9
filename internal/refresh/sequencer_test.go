package refresh

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slate/internal/domain"
)

func newSequencer() *Sequencer {
	return NewSequencer(slog.Default())
}

func TestSequencer_LastIssuedWins(t *testing.T) {
	s := newSequencer()

	// Refresh A issued, then refresh B before A resolves.
	epochA, ok := s.Next()
	require.True(t, ok)
	epochB, ok := s.Next()
	require.True(t, ok)

	// A resolves after B: A must be discarded, B applied.
	assert.False(t, s.Accept(epochA), "stale refresh A must be discarded")
	assert.True(t, s.Accept(epochB), "latest refresh B must be applied")
}

func TestSequencer_AcceptLatestOnly(t *testing.T) {
	s := newSequencer()

	e1, _ := s.Next()
	assert.True(t, s.Accept(e1))

	e2, _ := s.Next()
	assert.True(t, s.Accept(e2))
	assert.False(t, s.Accept(e1))
}

func TestSequencer_SuppressBlocksNext(t *testing.T) {
	s := newSequencer()

	s.Suppress()
	_, ok := s.Next()
	assert.False(t, ok, "Next must refuse while suppressed")
	assert.True(t, s.Suppressed())

	s.Resume()
	_, ok = s.Next()
	assert.True(t, ok, "Next works again after Resume")
	assert.False(t, s.Suppressed())
}

func TestSequencer_EpochSurvivesSuppression(t *testing.T) {
	s := newSequencer()

	e1, _ := s.Next()
	s.Suppress()
	s.Resume()
	assert.True(t, s.Accept(e1), "suppression must not invalidate issued epochs")
}

func TestSequencer_Do(t *testing.T) {
	t.Run("applies fresh fetch", func(t *testing.T) {
		s := newSequencer()
		snap, applied, err := s.Do(context.Background(), func(ctx context.Context) (domain.Snapshot, error) {
			return domain.Snapshot{Index: domain.Index{Name: "Board"}}, nil
		})
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "Board", snap.Index.Name)
	})

	t.Run("superseded mid-fetch is discarded", func(t *testing.T) {
		s := newSequencer()
		_, applied, err := s.Do(context.Background(), func(ctx context.Context) (domain.Snapshot, error) {
			// A newer refresh lands while this one is in flight.
			s.Next()
			return domain.Snapshot{}, nil
		})
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("suppressed is a no-op", func(t *testing.T) {
		s := newSequencer()
		s.Suppress()
		called := false
		_, applied, err := s.Do(context.Background(), func(ctx context.Context) (domain.Snapshot, error) {
			called = true
			return domain.Snapshot{}, nil
		})
		require.NoError(t, err)
		assert.False(t, applied)
		assert.False(t, called, "suppressed refresh must not contact the store")
	})

	t.Run("fetch error surfaces without applying", func(t *testing.T) {
		s := newSequencer()
		fetchErr := errors.New("store down")
		_, applied, err := s.Do(context.Background(), func(ctx context.Context) (domain.Snapshot, error) {
			return domain.Snapshot{}, fetchErr
		})
		require.ErrorIs(t, err, fetchErr)
		assert.False(t, applied)
	})
}
