package driving

import (
	"context"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// EventService lists and formats events.
type EventService interface {
	// List fetches events fresh from the source.
	List(ctx context.Context) ([]domain.Event, error)

	// Refresh fetches events and stores them as a new snapshot.
	Refresh(ctx context.Context) (*domain.Snapshot, error)

	// Latest returns the most recent stored snapshot.
	Latest(ctx context.Context) (*domain.Snapshot, error)

	// Filter returns events whose header fuzzily matches query, best first.
	Filter(events []domain.Event, query string) []domain.Event

	// Display returns linkified content, truncated unless expanded.
	Display(event domain.Event, expanded bool) string
}
