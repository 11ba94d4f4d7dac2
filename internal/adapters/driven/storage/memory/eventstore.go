package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore is an in-memory implementation of driven.EventStore.
// Snapshots are held newest last.
type EventStore struct {
	mu        sync.RWMutex
	snapshots []domain.Snapshot
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// Save stores a copy of snapshot.
func (s *EventStore) Save(_ context.Context, snapshot domain.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now()
	}
	snapshot.Events = append([]domain.Event{}, snapshot.Events...)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snapshots {
		if existing.ID == snapshot.ID {
			return domain.ErrInvalidInput
		}
	}
	s.snapshots = append(s.snapshots, snapshot)
	// Stable so equal times keep insertion order.
	sort.SliceStable(s.snapshots, func(i, j int) bool {
		return s.snapshots[i].FetchedAt.Before(s.snapshots[j].FetchedAt)
	})
	return nil
}

// Latest returns the most recently fetched snapshot.
func (s *EventStore) Latest(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := s.snapshots[len(s.snapshots)-1]
	latest.Events = append([]domain.Event{}, latest.Events...)
	return &latest, nil
}

// Prune keeps the newest keep snapshots.
func (s *EventStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(s.snapshots) > keep {
		s.snapshots = append([]domain.Snapshot(nil), s.snapshots[len(s.snapshots)-keep:]...)
	}
	return nil
}

// Len returns the number of stored snapshots.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}
