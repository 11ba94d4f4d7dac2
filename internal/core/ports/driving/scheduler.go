package driving

import (
	"context"
	"time"
)

// Scheduler refreshes the stored snapshot in the background.
type Scheduler interface {
	// Start schedules refreshes on a cron spec.
	// Blocks until the context is cancelled or Stop is called.
	Start(ctx context.Context, spec string) error

	// Stop ends a running Start.
	Stop()

	// Next returns the next scheduled run, or the zero time when idle.
	Next() time.Time
}
