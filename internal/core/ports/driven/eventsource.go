package driven

import (
	"context"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// EventSource fetches events from an external database.
type EventSource interface {
	// Type returns the source type identifier.
	Type() string

	// Fetch returns every event in the source, constructed fresh.
	// Returns domain.ErrConfigMissing before any network call when the
	// settings lack credentials.
	Fetch(ctx context.Context, settings domain.NotionSettings) ([]domain.Event, error)
}

// FetchObserver is notified after every fetch attempt.
type FetchObserver interface {
	// ObserveFetch records the duration, result size and outcome of a fetch.
	ObserveFetch(source string, seconds float64, count int, err error)
}
