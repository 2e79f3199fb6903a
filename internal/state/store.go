package state

import (
	"slices"
	"sync"
	"time"

	"github.com/pixelflip/scanboard/internal/scanner"
)

// Snapshot is the displayed status plus bookkeeping for the UI.
type Snapshot struct {
	Status scanner.Status
	// Version increases each time Status is replaced.
	Version uint64
	// UpdatedAt is when Status was last replaced.
	UpdatedAt time.Time
	// PolledAt is the last successful poll, including ones that changed nothing.
	PolledAt time.Time
}

// Store holds the displayed status. Only the poller writes to it.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
	changes  chan struct{}
}

// NewStore returns a Store displaying seed until the first accepted poll.
func NewStore(seed scanner.Status) *Store {
	return &Store{
		snapshot: Snapshot{Status: seed.Clone()},
		now:      time.Now,
		changes:  make(chan struct{}, 1),
	}
}

// Offer proposes a freshly polled status. It replaces the displayed value only
// when Changed reports a difference and returns whether it did.
func (s *Store) Offer(next scanner.Status) bool {
	s.mu.Lock()
	now := s.now()
	s.snapshot.PolledAt = now
	if !Changed(s.snapshot.Status, next) {
		s.mu.Unlock()
		return false
	}
	s.snapshot.Status = next.Clone()
	s.snapshot.Version++
	s.snapshot.UpdatedAt = now
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
	}
	return true
}

// Snapshot returns a copy of the displayed state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Status = s.snapshot.Status.Clone()
	return snap
}

// Changes signals after each replacement. Signals coalesce: a reader that
// falls behind sees one pending signal, not one per replacement.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Changed reports whether next should replace prev: the activity list differs
// in content or order, or any counter, the status label or the running flag
// differs. last_check alone does not count.
func Changed(prev, next scanner.Status) bool {
	if !slices.Equal(prev.RecentActivity, next.RecentActivity) {
		return true
	}
	return prev.ItemsScannedToday != next.ItemsScannedToday ||
		prev.MatchesFoundToday != next.MatchesFoundToday ||
		prev.State != next.State ||
		prev.Running != next.Running
}
