package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/eventbox/internal/adapters/driving/tui"
)

var tuiCached bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse events interactively",
	Long: `Launch the interactive terminal event browser.

Controls:
  ↑/k, ↓/j - Move between events
  Enter    - Expand the selected event
  Esc      - Collapse / clear filter
  /        - Filter by header
  r        - Reload
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiCached, "cached", false, "browse the last synced snapshot")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	events, err := eventService()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Events: events})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithCached(tuiCached)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
