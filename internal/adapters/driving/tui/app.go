package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// filterHeight is the height of the bordered filter input.
const filterHeight = 3

// App is the event browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	list   *list.EventList
	filter *input.FilterInput
	status *status.Bar

	// events holds every loaded event; the list shows the filtered subset.
	events    []domain.Event
	fetchedAt time.Time

	// cached loads the latest stored snapshot instead of fetching.
	cached bool

	mode    messages.Mode
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		help:    help.New(),
		list:    list.NewEventList(s, ports.Events.Display),
		filter:  input.NewFilterInput(s),
		status:  status.NewBar(s, km),
		mode:    messages.ModeBrowse,
		loading: true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithCached makes the app show the latest stored snapshot.
func (a *App) WithCached(cached bool) *App {
	a.cached = cached
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("eventbox"),
		a.load(),
	)
}

// load fetches events in the background.
func (a *App) load() tea.Cmd {
	ctx := a.ctx
	events := a.ports.Events
	cached := a.cached

	return func() tea.Msg {
		if cached {
			snapshot, err := events.Latest(ctx)
			if err != nil {
				return messages.EventsLoaded{Err: err}
			}
			return messages.EventsLoaded{Events: snapshot.Events, FetchedAt: snapshot.FetchedAt}
		}

		loaded, err := events.List(ctx)
		return messages.EventsLoaded{Events: loaded, Err: err, FetchedAt: time.Now()}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.EventsLoaded:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(errorMessage(msg.Err))
			return a, nil
		}
		a.err = nil
		a.events = msg.Events
		a.fetchedAt = msg.FetchedAt
		a.applyFilter()
		a.status.SetState(a.readyState())
		return a, nil

	case messages.ReloadRequested:
		if a.loading {
			return a, nil
		}
		a.loading = true
		a.status.SetState(status.StateLoading)
		return a, a.load()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case messages.ModeFilter:
			return a.updateFilter(msg)
		case messages.ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateBrowse(msg)
		}
	}

	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.mode = messages.ModeHelp
	case key.Matches(msg, a.keymap.Up):
		a.list.MoveUp()
	case key.Matches(msg, a.keymap.Down):
		a.list.MoveDown()
	case key.Matches(msg, a.keymap.Expand):
		a.list.Expand()
	case key.Matches(msg, a.keymap.Collapse):
		if a.list.Expanded() {
			a.list.Collapse()
		} else if a.filter.Value() != "" {
			a.filter.Reset()
			a.applyFilter()
			a.layout()
		}
	case key.Matches(msg, a.keymap.Filter):
		a.mode = messages.ModeFilter
		a.status.SetState(status.StateFiltering)
		a.layout()
		return a, a.filter.Focus()
	case key.Matches(msg, a.keymap.Reload):
		return a.Update(messages.ReloadRequested{})
	}
	return a, nil
}

// updateFilter edits the filter; the list narrows as the query changes.
func (a *App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // only enter and esc leave the filter
	switch msg.Type {
	case tea.KeyEnter:
		a.leaveFilter()
		return a, nil
	case tea.KeyEsc:
		a.filter.Reset()
		a.applyFilter()
		a.leaveFilter()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.applyFilter()
	return a, cmd
}

func (a *App) leaveFilter() {
	a.filter.Blur()
	a.mode = messages.ModeBrowse
	a.status.SetState(a.readyState())
	a.layout()
}

func (a *App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keymap.Quit) {
		return a, tea.Quit
	}
	a.mode = messages.ModeBrowse
	return a, nil
}

// applyFilter narrows the list to events matching the filter query.
func (a *App) applyFilter() {
	shown := a.events
	if q := a.filter.Value(); q != "" {
		shown = a.ports.Events.Filter(a.events, q)
	}
	a.list.SetEvents(shown)
	a.status.SetCounts(len(shown), len(a.events))
}

func (a *App) readyState() status.State {
	if a.err != nil {
		return status.StateError
	}
	if a.loading {
		return status.StateLoading
	}
	return status.StateReady
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		return "not configured, run `eventbox config init`"
	case errors.Is(err, domain.ErrNotFound):
		return "no snapshot yet, run `eventbox sync`"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate limited by Notion, press r to retry"
	default:
		return err.Error()
	}
}

// filterVisible reports whether the filter input takes up space.
func (a *App) filterVisible() bool {
	return a.mode == messages.ModeFilter || a.filter.Value() != ""
}

// layout sizes the components to the terminal.
func (a *App) layout() {
	// Title and status bar take one line each.
	listHeight := a.height - 2
	if a.filterVisible() {
		listHeight -= filterHeight
	}
	a.list.SetDimensions(a.width, listHeight)
	a.filter.SetWidth(a.width)
	a.status.SetWidth(a.width)
	a.help.Width = a.width
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	title := a.styles.Title.Render("Events")
	if !a.fetchedAt.IsZero() {
		title += "  " + a.styles.Muted.Render("fetched "+a.fetchedAt.Format("15:04"))
	}

	sections := []string{title}
	if a.filterVisible() {
		sections = append(sections, a.filter.View())
	}

	switch {
	case a.mode == messages.ModeHelp:
		sections = append(sections, a.help.FullHelpView(a.keymap.FullHelp()))
	case a.loading && len(a.events) == 0:
		sections = append(sections, a.styles.Muted.Render("Loading events..."))
	default:
		sections = append(sections, a.list.View())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	bodyHeight := a.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).Render(body),
		a.status.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Events returns every loaded event.
func (a *App) Events() []domain.Event {
	return a.events
}

// Visible returns the events currently listed.
func (a *App) Visible() []domain.Event {
	return a.list.Events()
}

// Selected returns the event under the cursor, or nil.
func (a *App) Selected() *domain.Event {
	return a.list.SelectedEvent()
}

// Expanded reports whether the selected event is expanded.
func (a *App) Expanded() bool {
	return a.list.Expanded()
}

// Mode returns the current input mode.
func (a *App) Mode() messages.Mode {
	return a.mode
}

// Loading reports whether a fetch is in flight.
func (a *App) Loading() bool {
	return a.loading
}

// Err returns the last load error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
