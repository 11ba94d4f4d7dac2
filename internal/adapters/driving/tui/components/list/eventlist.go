// Package list provides list display components for the TUI.
package list

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/markup"
)

// contentIndent is the left margin of event content under its header.
const contentIndent = 4

// DisplayFunc formats event content, truncated unless expanded.
type DisplayFunc func(event domain.Event, expanded bool) string

// EventList displays events in a scrollable list.
// At most one event, the selected one, is expanded.
type EventList struct {
	events   []domain.Event
	selected int
	expanded bool
	display  DisplayFunc
	styles   *styles.Styles
	viewport viewport.Model
}

// NewEventList creates a new event list component.
func NewEventList(s *styles.Styles, display DisplayFunc) *EventList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if display == nil {
		display = func(e domain.Event, _ bool) string { return e.Content }
	}

	return &EventList{
		display:  display,
		styles:   s,
		viewport: viewport.New(80, 20),
	}
}

// View renders the visible part of the list.
func (l *EventList) View() string {
	if len(l.events) == 0 {
		return l.styles.Muted.Render("No events")
	}

	blocks := make([]string, len(l.events))
	start, end := 0, 0
	line := 0
	for i := range l.events {
		blocks[i] = l.renderEvent(i)
		height := strings.Count(blocks[i], "\n") + 1
		if i == l.selected {
			start, end = line, line+height
		}
		// Blank separator line.
		line += height + 1
	}

	l.viewport.SetContent(strings.Join(blocks, "\n\n"))
	l.scrollTo(start, end)
	return l.viewport.View()
}

// scrollTo keeps lines [start, end) in view, preferring the top.
func (l *EventList) scrollTo(start, end int) {
	top := l.viewport.YOffset
	bottom := top + l.viewport.Height
	switch {
	case start < top || end-start > l.viewport.Height:
		l.viewport.SetYOffset(start)
	case end > bottom:
		l.viewport.SetYOffset(end - l.viewport.Height)
	}
}

func (l *EventList) renderEvent(index int) string {
	event := l.events[index]
	selected := index == l.selected
	expanded := selected && l.expanded

	header := event.Header
	if header == "" {
		header = "(Untitled)"
	}

	var headerLine string
	if selected {
		headerLine = l.styles.SelectedHeader.Render("> " + header)
	} else {
		headerLine = l.styles.Header.Render("  " + header)
	}
	if event.Date != "" {
		headerLine += "  " + l.styles.Date.Render(event.Date)
	}

	text := markup.StripTags(l.display(event, expanded))
	if text == "" {
		return headerLine
	}

	width := l.viewport.Width - contentIndent
	if width < 20 {
		width = 20
	}

	var body string
	if expanded {
		card := l.styles.Card.Width(width - l.styles.Card.GetHorizontalBorderSize())
		body = card.Render(text)
	} else {
		body = l.styles.Content.Width(width).Render(text)
	}

	indent := lipgloss.NewStyle().PaddingLeft(contentIndent)
	return headerLine + "\n" + indent.Render(body)
}

// SetEvents replaces the listed events.
// The selection follows the previously selected event when it is still present.
func (l *EventList) SetEvents(events []domain.Event) {
	var selectedID string
	if e := l.SelectedEvent(); e != nil {
		selectedID = e.ID
	}

	l.events = events
	l.selected = 0
	for i, e := range events {
		if selectedID != "" && e.ID == selectedID {
			l.selected = i
			return
		}
	}
	l.expanded = false
}

// Events returns the listed events.
func (l *EventList) Events() []domain.Event {
	return l.events
}

// Selected returns the index of the selected event.
func (l *EventList) Selected() int {
	return l.selected
}

// SelectedEvent returns the selected event, or nil if the list is empty.
func (l *EventList) SelectedEvent() *domain.Event {
	if l.selected < 0 || l.selected >= len(l.events) {
		return nil
	}
	return &l.events[l.selected]
}

// MoveUp moves the selection up and collapses the previous event.
func (l *EventList) MoveUp() {
	if l.selected > 0 {
		l.selected--
		l.expanded = false
	}
}

// MoveDown moves the selection down and collapses the previous event.
func (l *EventList) MoveDown() {
	if l.selected < len(l.events)-1 {
		l.selected++
		l.expanded = false
	}
}

// Expand shows the selected event in full.
func (l *EventList) Expand() {
	if len(l.events) > 0 {
		l.expanded = true
	}
}

// Collapse returns the selected event to its preview.
func (l *EventList) Collapse() {
	l.expanded = false
}

// Expanded reports whether the selected event is expanded.
func (l *EventList) Expanded() bool {
	return l.expanded
}

// SetDimensions sets the visible area.
func (l *EventList) SetDimensions(width, height int) {
	if height < 1 {
		height = 1
	}
	l.viewport.Width = width
	l.viewport.Height = height
}

// Count returns the number of listed events.
func (l *EventList) Count() int {
	return len(l.events)
}
