package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// mockEventSource implements driven.EventSource for testing.
type mockEventSource struct {
	mu       sync.Mutex
	events   []domain.Event
	err      error
	calls    int
	settings domain.NotionSettings
	block    chan struct{}
}

func (m *mockEventSource) Type() string {
	return "mock"
}

func (m *mockEventSource) Fetch(ctx context.Context, settings domain.NotionSettings) ([]domain.Event, error) {
	m.mu.Lock()
	m.calls++
	m.settings = settings
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Event(nil), m.events...), nil
}

func (m *mockEventSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockEventStore implements driven.EventStore with injectable failures.
type mockEventStore struct {
	saved    []domain.Snapshot
	saveErr  error
	pruneErr error
	pruned   []int
}

func (m *mockEventStore) Save(_ context.Context, snapshot domain.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, snapshot)
	return nil
}

func (m *mockEventStore) Latest(_ context.Context) (*domain.Snapshot, error) {
	if len(m.saved) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := m.saved[len(m.saved)-1]
	return &latest, nil
}

func (m *mockEventStore) Prune(_ context.Context, keep int) error {
	m.pruned = append(m.pruned, keep)
	return m.pruneErr
}

// mockObserver implements driven.FetchObserver for testing.
type mockObserver struct {
	source string
	count  int
	err    error
	calls  int
}

func (m *mockObserver) ObserveFetch(source string, _ float64, count int, err error) {
	m.source = source
	m.count = count
	m.err = err
	m.calls++
}

// mockEventService implements driving.EventService for scheduler tests.
type mockEventService struct {
	mu          sync.Mutex
	refreshes   int
	refreshErr  error
	refreshSize int
}

func (m *mockEventService) List(_ context.Context) ([]domain.Event, error) {
	return nil, nil
}

func (m *mockEventService) Refresh(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return &domain.Snapshot{Events: make([]domain.Event, m.refreshSize)}, nil
}

func (m *mockEventService) Latest(_ context.Context) (*domain.Snapshot, error) {
	return nil, domain.ErrNotFound
}

func (m *mockEventService) Filter(events []domain.Event, _ string) []domain.Event {
	return events
}

func (m *mockEventService) Display(event domain.Event, _ bool) string {
	return event.Content
}

func (m *mockEventService) Refreshes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

// Ensure mocks implement interfaces
var (
	_ driven.EventSource   = (*mockEventSource)(nil)
	_ driven.EventStore    = (*mockEventStore)(nil)
	_ driven.FetchObserver = (*mockObserver)(nil)
	_ driving.EventService = (*mockEventService)(nil)
)
