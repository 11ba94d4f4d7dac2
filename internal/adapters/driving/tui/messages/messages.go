// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"time"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// EventsLoaded carries fetched events back to the model.
type EventsLoaded struct {
	Events []domain.Event
	Err    error

	// FetchedAt is the time the events were fetched.
	FetchedAt time.Time
}

// ReloadRequested asks the model to fetch events again.
type ReloadRequested struct{}

// Mode identifies what keyboard input currently controls.
type Mode int

const (
	// ModeBrowse moves through the event list.
	ModeBrowse Mode = iota
	// ModeFilter edits the header filter.
	ModeFilter
	// ModeHelp shows the full keybinding list.
	ModeHelp
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeFilter:
		return "filter"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}
