package driven

import (
	"context"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// EventStore persists fetched snapshots.
type EventStore interface {
	// Save stores a snapshot.
	Save(ctx context.Context, snapshot domain.Snapshot) error

	// Latest returns the most recently fetched snapshot.
	// Returns domain.ErrNotFound if nothing has been stored.
	Latest(ctx context.Context) (*domain.Snapshot, error)

	// Prune keeps the newest keep snapshots and deletes the rest.
	Prune(ctx context.Context, keep int) error
}
