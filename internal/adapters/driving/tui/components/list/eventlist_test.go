package list

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// shortDisplay cuts collapsed content to five bytes.
func shortDisplay(e domain.Event, expanded bool) string {
	if expanded || len(e.Content) <= 5 {
		return e.Content
	}
	return e.Content[:5] + "..."
}

func testEvents() []domain.Event {
	return []domain.Event{
		{ID: "evt-1", Header: "Book club", Date: "2024-05-01", Content: `Read <a href="https://example.com">chapter 3</a>`},
		{ID: "evt-2", Header: "Hack night", Content: "Bring laptops"},
		{ID: "evt-3", Header: "", Content: ""},
	}
}

func newTestList() *EventList {
	l := NewEventList(nil, shortDisplay)
	l.SetDimensions(80, 40)
	l.SetEvents(testEvents())
	return l
}

func TestNewEventList_Empty(t *testing.T) {
	l := NewEventList(nil, nil)

	assert.Equal(t, 0, l.Count())
	assert.Nil(t, l.SelectedEvent())
	assert.Equal(t, "No events", l.View())
}

func TestEventList_View_Collapsed(t *testing.T) {
	l := newTestList()

	view := l.View()

	assert.Contains(t, view, "> Book club")
	assert.Contains(t, view, "2024-05-01")
	assert.Contains(t, view, "Read ...")
	assert.NotContains(t, view, "chapter 3")
	assert.NotContains(t, view, "<a")
	assert.Contains(t, view, "  Hack night")
	assert.Contains(t, view, "Bring...")
	assert.Contains(t, view, "(Untitled)")
}

func TestEventList_ExpandAndCollapse(t *testing.T) {
	l := newTestList()

	l.Expand()
	assert.True(t, l.Expanded())
	assert.Contains(t, l.View(), "Read chapter 3")
	// Only the selected event expands.
	assert.Contains(t, l.View(), "Bring...")

	l.Collapse()
	assert.False(t, l.Expanded())
	assert.NotContains(t, l.View(), "chapter 3")
}

func TestEventList_MovingCollapses(t *testing.T) {
	l := newTestList()
	l.Expand()

	l.MoveDown()

	assert.Equal(t, 1, l.Selected())
	assert.False(t, l.Expanded())
	assert.Contains(t, l.View(), "> Hack night")
}

func TestEventList_MoveBounds(t *testing.T) {
	l := newTestList()

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())
}

func TestEventList_SetEvents_KeepsSelection(t *testing.T) {
	l := newTestList()
	l.MoveDown()
	l.Expand()

	reordered := testEvents()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	l.SetEvents(reordered)

	require.NotNil(t, l.SelectedEvent())
	assert.Equal(t, "evt-2", l.SelectedEvent().ID)
	assert.Equal(t, 0, l.Selected())
	assert.True(t, l.Expanded())
}

func TestEventList_SetEvents_SelectionGone(t *testing.T) {
	l := newTestList()
	l.MoveDown()
	l.Expand()

	l.SetEvents(testEvents()[2:])

	assert.Equal(t, 0, l.Selected())
	assert.False(t, l.Expanded())
}

func TestEventList_ExpandEmptyList(t *testing.T) {
	l := NewEventList(nil, nil)

	l.Expand()

	assert.False(t, l.Expanded())
}

func TestEventList_ScrollsToSelection(t *testing.T) {
	events := make([]domain.Event, 20)
	for i := range events {
		events[i] = domain.Event{ID: fmt.Sprint(i), Header: fmt.Sprintf("Event %02d", i), Content: "x"}
	}
	l := NewEventList(nil, shortDisplay)
	l.SetDimensions(80, 6)
	l.SetEvents(events)

	assert.Contains(t, l.View(), "Event 00")

	for range 15 {
		l.MoveDown()
	}
	view := l.View()

	assert.Contains(t, view, "> Event 15")
	assert.NotContains(t, view, "Event 00")
	assert.LessOrEqual(t, strings.Count(view, "\n")+1, 6)

	for range 15 {
		l.MoveUp()
	}
	assert.Contains(t, l.View(), "> Event 00")
}
