package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
	"github.com/custodia-labs/eventbox/internal/logger"
	"github.com/custodia-labs/eventbox/internal/markup"
)

// Ensure EventService implements the interface.
var _ driving.EventService = (*EventService)(nil)

// DefaultSnapshotRetention is the number of snapshots kept after a refresh.
const DefaultSnapshotRetention = 10

// errNoStore is returned by store operations when no EventStore is wired.
var errNoStore = errors.New("no event store configured")

// EventService fetches, stores and formats events.
type EventService struct {
	source    driven.EventSource
	store     driven.EventStore
	settings  driving.SettingsService
	observer  driven.FetchObserver
	retention int
	now       func() time.Time
}

// NewEventService creates an event service.
// store may be nil, in which case Refresh and Latest fail.
func NewEventService(
	source driven.EventSource,
	store driven.EventStore,
	settings driving.SettingsService,
) *EventService {
	return &EventService{
		source:    source,
		store:     store,
		settings:  settings,
		retention: DefaultSnapshotRetention,
		now:       time.Now,
	}
}

// SetObserver sets the observer notified after every fetch.
func (s *EventService) SetObserver(observer driven.FetchObserver) {
	s.observer = observer
}

// SetRetention sets how many snapshots Refresh keeps.
func (s *EventService) SetRetention(keep int) {
	s.retention = keep
}

// List fetches events fresh from the source.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	start := s.now()
	events, err := s.source.Fetch(ctx, settings.Notion)
	elapsed := s.now().Sub(start)

	if s.observer != nil {
		s.observer.ObserveFetch(s.source.Type(), elapsed.Seconds(), len(events), err)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("fetched %d events from %s in %s", len(events), s.source.Type(), elapsed)
	return events, nil
}

// Refresh fetches events and stores them as a new snapshot.
// Older snapshots beyond the retention count are pruned.
func (s *EventService) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	if s.store == nil {
		return nil, errNoStore
	}

	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := domain.Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: s.now(),
		Events:    events,
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	if s.retention > 0 {
		if err := s.store.Prune(ctx, s.retention); err != nil {
			logger.Warn("prune snapshots: %v", err)
		}
	}

	logger.Info("stored snapshot %s with %d events", snapshot.ID, len(events))
	return &snapshot, nil
}

// Latest returns the most recent stored snapshot.
func (s *EventService) Latest(ctx context.Context) (*domain.Snapshot, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Latest(ctx)
}

// Filter returns events whose header fuzzily matches query, best match first.
// An empty query returns every event in its original order.
func (s *EventService) Filter(events []domain.Event, query string) []domain.Event {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]domain.Event(nil), events...)
	}

	matches := fuzzy.FindFrom(query, headers(events))
	filtered := make([]domain.Event, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, events[m.Index])
	}
	return filtered
}

// Display returns linkified content.
// Collapsed content is truncated to the configured visible-character budget.
func (s *EventService) Display(event domain.Event, expanded bool) string {
	content := markup.Linkify(event.Content)
	if expanded {
		return content
	}
	return markup.Truncate(content, s.truncateLength())
}

func (s *EventService) truncateLength() int {
	settings, err := s.settings.Get()
	if err != nil {
		return domain.DefaultTruncateLength
	}
	return settings.Display.TruncateLength
}

// headers adapts events to fuzzy.Source.
type headers []domain.Event

func (h headers) String(i int) string { return h[i].Header }
func (h headers) Len() int            { return len(h) }
