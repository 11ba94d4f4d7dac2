package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// mockEventService is a mock implementation of driving.EventService.
type mockEventService struct {
	events    []domain.Event
	listErr   error
	snapshot  *domain.Snapshot
	latestErr error
	refreshed int
}

var _ driving.EventService = (*mockEventService)(nil)

func (m *mockEventService) List(_ context.Context) ([]domain.Event, error) {
	return m.events, m.listErr
}

func (m *mockEventService) Refresh(_ context.Context) (*domain.Snapshot, error) {
	m.refreshed++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return &domain.Snapshot{ID: "snap-1", FetchedAt: time.Now(), Events: m.events}, nil
}

func (m *mockEventService) Latest(_ context.Context) (*domain.Snapshot, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	if m.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	return m.snapshot, nil
}

func (m *mockEventService) Filter(events []domain.Event, query string) []domain.Event {
	var out []domain.Event
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Header), strings.ToLower(query)) {
			out = append(out, e)
		}
	}
	return out
}

// Display cuts collapsed content to five bytes plus a marker.
func (m *mockEventService) Display(event domain.Event, expanded bool) string {
	if expanded || len(event.Content) <= 5 {
		return event.Content
	}
	return event.Content[:5] + "..."
}

// mockSettingsService stores raw values in a map.
type mockSettingsService struct {
	values   map[string]string
	settings domain.Settings
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		values:   map[string]string{},
		settings: domain.DefaultSettings(),
	}
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	s := m.settings
	if v, ok := m.values[keySecret]; ok {
		s.Notion.Secret = v
	}
	if v, ok := m.values[keyDatabaseID]; ok {
		s.Notion.DatabaseID = v
	}
	return s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	switch key {
	case keySecret, keyDatabaseID, "server.mode":
		m.values[key] = value
		return nil
	default:
		return errors.Join(domain.ErrInvalidInput, errors.New("unknown key "+key))
	}
}

func (m *mockSettingsService) Validate() error {
	s, _ := m.Get()
	return s.Validate()
}

func (m *mockSettingsService) Keys() []string {
	return []string{keyDatabaseID, keySecret, "server.mode"}
}

func testEvents() []domain.Event {
	return []domain.Event{
		{
			ID:      "evt-1",
			Header:  "Book club",
			Date:    "2024-05-01",
			URL:     "https://www.notion.so/evt-1",
			Content: `Read <a href="https://example.com">chapter 3</a><br />Tea &amp; cake`,
		},
		{
			ID:      "evt-2",
			Header:  "Hack night",
			Content: "Bring laptops",
		},
	}
}

// setupTestDeps installs d for the duration of a test.
func setupTestDeps(d *Dependencies) func() {
	old := deps
	deps = d
	return func() { deps = old }
}

// resetFlags restores command flag variables to their defaults.
func resetFlags() {
	listFilter, listFull, listCached, listJSON = "", false, false, false
	renderOut, renderCached, renderTitle = "", false, "Events"
	serveAddr = ""
	tuiCached = false
	mcpHTTPAddr = ""
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
