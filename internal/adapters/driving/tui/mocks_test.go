package tui

import (
	"context"
	"strings"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// mockEventService is a mock implementation of driving.EventService.
type mockEventService struct {
	events    []domain.Event
	listErr   error
	snapshot  *domain.Snapshot
	latestErr error
	listed    int
}

var _ driving.EventService = (*mockEventService)(nil)

func (m *mockEventService) List(_ context.Context) ([]domain.Event, error) {
	m.listed++
	return m.events, m.listErr
}

func (m *mockEventService) Refresh(_ context.Context) (*domain.Snapshot, error) {
	return m.snapshot, m.listErr
}

func (m *mockEventService) Latest(_ context.Context) (*domain.Snapshot, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	if m.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	return m.snapshot, nil
}

func (m *mockEventService) Filter(events []domain.Event, query string) []domain.Event {
	var out []domain.Event
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Header), strings.ToLower(query)) {
			out = append(out, e)
		}
	}
	return out
}

// Display cuts collapsed content to five bytes plus a marker.
func (m *mockEventService) Display(event domain.Event, expanded bool) string {
	if expanded || len(event.Content) <= 5 {
		return event.Content
	}
	return event.Content[:5] + "..."
}

func testEvents() []domain.Event {
	return []domain.Event{
		{
			ID:      "evt-1",
			Header:  "Book club",
			Date:    "2024-05-01",
			Content: `Read <a href="https://example.com">chapter 3</a>`,
		},
		{
			ID:      "evt-2",
			Header:  "Hack night",
			Content: "Bring laptops",
		},
	}
}
