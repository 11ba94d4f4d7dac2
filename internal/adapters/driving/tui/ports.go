// Package tui provides an interactive terminal event browser.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Events lists, filters and formats events.
	Events driving.EventService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Events == nil {
		return ErrMissingEventService
	}
	return nil
}
