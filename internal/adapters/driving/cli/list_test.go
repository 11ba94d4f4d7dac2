package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

func TestListCmd_Flags(t *testing.T) {
	filter := listCmd.Flags().Lookup("filter")
	require.NotNil(t, filter)
	assert.Equal(t, "f", filter.Shorthand)

	for _, name := range []string{"full", "cached", "json"} {
		flag := listCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestListCmd_NotConfigured(t *testing.T) {
	defer setupTestDeps(nil)()

	_, err := execute("list")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestListCmd_Collapsed(t *testing.T) {
	defer setupTestDeps(&Dependencies{Events: &mockEventService{events: testEvents()}})()

	out, err := execute("list")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Book club (2024-05-01)")
	assert.Contains(t, out, "    Read ...")
	assert.Contains(t, out, "[2] Hack night\n")
	assert.Contains(t, out, "    Bring...")
	assert.NotContains(t, out, "<a")
}

func TestListCmd_Full(t *testing.T) {
	defer setupTestDeps(&Dependencies{Events: &mockEventService{events: testEvents()}})()

	out, err := execute("list", "--full")

	require.NoError(t, err)
	assert.Contains(t, out, "    Read chapter 3\n    Tea & cake\n")
	assert.Contains(t, out, "    Bring laptops")
}

func TestListCmd_Filter(t *testing.T) {
	defer setupTestDeps(&Dependencies{Events: &mockEventService{events: testEvents()}})()

	out, err := execute("list", "--filter", "hack")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] Hack night")
	assert.NotContains(t, out, "Book club")
}

func TestListCmd_Empty(t *testing.T) {
	defer setupTestDeps(&Dependencies{Events: &mockEventService{}})()

	out, err := execute("list")

	require.NoError(t, err)
	assert.Contains(t, out, "No events found.")
}

func TestListCmd_Cached(t *testing.T) {
	events := &mockEventService{
		listErr: errors.New("should not fetch"),
		snapshot: &domain.Snapshot{
			ID: "snap-1", FetchedAt: time.Now(), Events: testEvents()[1:],
		},
	}
	defer setupTestDeps(&Dependencies{Events: events})()

	out, err := execute("list", "--cached")

	require.NoError(t, err)
	assert.Contains(t, out, "Hack night")
	assert.NotContains(t, out, "Book club")
}

func TestListCmd_JSON(t *testing.T) {
	defer setupTestDeps(&Dependencies{Events: &mockEventService{events: testEvents()}})()

	out, err := execute("list", "--json", "--full")

	require.NoError(t, err)
	var got []listedEvent
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "evt-1", got[0].ID)
	assert.Equal(t, testEvents()[0].Content, got[0].Content)
	assert.Empty(t, got[1].Date)
}

func TestListCmd_Errors(t *testing.T) {
	tests := []struct {
		name   string
		events *mockEventService
		args   []string
		target error
		hint   string
	}{
		{
			name:   "config missing",
			events: &mockEventService{listErr: fmt.Errorf("fetch events: %w", domain.ErrConfigMissing)},
			args:   []string{"list"},
			target: domain.ErrConfigMissing,
			hint:   "eventbox config init",
		},
		{
			name:   "no snapshot",
			events: &mockEventService{},
			args:   []string{"list", "--cached"},
			target: domain.ErrNotFound,
			hint:   "eventbox sync",
		},
		{
			name:   "rate limited",
			events: &mockEventService{listErr: domain.ErrRateLimited},
			args:   []string{"list"},
			target: domain.ErrRateLimited,
			hint:   "try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer setupTestDeps(&Dependencies{Events: tt.events})()

			_, err := execute(tt.args...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.True(t, strings.Contains(err.Error(), tt.hint), err.Error())
		})
	}
}

func TestListCmd_RejectsArgs(t *testing.T) {
	defer setupTestDeps(&Dependencies{Events: &mockEventService{}})()

	_, err := execute("list", "extra")

	assert.Error(t, err)
}
