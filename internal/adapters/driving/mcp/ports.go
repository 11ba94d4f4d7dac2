package mcp

import (
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Events lists, filters and formats events.
	Events driving.EventService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Events == nil {
		return ErrMissingEventService
	}
	return nil
}
