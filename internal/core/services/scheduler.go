package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
	"github.com/custodia-labs/eventbox/internal/logger"
)

// ErrSchedulerRunning is returned by Start when the scheduler is already running.
var ErrSchedulerRunning = errors.New("scheduler already running")

var _ driving.Scheduler = (*Scheduler)(nil)

// RefreshResult describes the outcome of the last scheduled refresh.
type RefreshResult struct {
	StartedAt time.Time
	EndedAt   time.Time
	Events    int
	Err       error
}

// Scheduler refreshes the stored snapshot on a cron schedule.
// Overlapping runs are skipped.
type Scheduler struct {
	events driving.EventService

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	running bool
	stopCh  chan struct{}
	last    *RefreshResult
}

// NewScheduler creates a scheduler for events.
func NewScheduler(events driving.EventService) *Scheduler {
	return &Scheduler{events: events}
}

// Start schedules refreshes on spec and blocks until ctx is cancelled or
// Stop is called.
// A refresh also runs immediately so the snapshot is populated on startup.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("%w: invalid schedule %q: %v", domain.ErrInvalidInput, spec, err)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrSchedulerRunning
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s.entryID = c.Schedule(schedule, cron.FuncJob(func() { s.RunNow(ctx) }))
	s.cron = c
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	logger.Info("scheduler: refreshing on %q", spec)
	s.RunNow(ctx)
	c.Start()

	select {
	case <-ctx.Done():
	case <-stopCh:
	}

	// Wait for a refresh in progress to finish.
	<-c.Stop().Done()

	s.mu.Lock()
	s.running = false
	s.cron = nil
	s.mu.Unlock()

	return nil
}

// Stop ends a running Start. It is a no-op when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running && s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
}

// RunNow performs one refresh and records its result.
func (s *Scheduler) RunNow(ctx context.Context) RefreshResult {
	result := RefreshResult{StartedAt: time.Now()}

	snapshot, err := s.events.Refresh(ctx)
	result.EndedAt = time.Now()
	result.Err = err
	if snapshot != nil {
		result.Events = len(snapshot.Events)
	}

	if err != nil {
		logger.Error("scheduler: refresh failed: %v", err)
	} else {
		logger.Debug("scheduler: refreshed %d events in %s", result.Events, result.EndedAt.Sub(result.StartedAt))
	}

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()

	return result
}

// Next returns the next scheduled run, or the zero time when not running.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// LastResult returns the result of the most recent refresh, if any.
func (s *Scheduler) LastResult() (RefreshResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return RefreshResult{}, false
	}
	return *s.last, true
}

// IsRunning reports whether Start is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
