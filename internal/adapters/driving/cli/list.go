package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
	"github.com/custodia-labs/eventbox/internal/markup"
)

var (
	listFilter string
	listFull   bool
	listCached bool
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Long: `Fetches events from the configured Notion database and prints them.
Content is shortened to the display.truncate_length setting unless --full is
given. Use --cached to print the last synced snapshot without contacting Notion.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "fuzzy filter on event headers")
	listCmd.Flags().BoolVar(&listFull, "full", false, "print full event content")
	listCmd.Flags().BoolVar(&listCached, "cached", false, "use the last synced snapshot")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output events as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	events, err := eventService()
	if err != nil {
		return err
	}

	loaded, err := loadEvents(cmd.Context(), events, listCached)
	if err != nil {
		return err
	}
	if listFilter != "" {
		loaded = events.Filter(loaded, listFilter)
	}

	if listJSON {
		return outputEventsJSON(cmd, events, loaded)
	}
	outputEvents(cmd, events, loaded)
	return nil
}

// loadEvents fetches fresh events or reads the latest snapshot.
func loadEvents(ctx context.Context, events driving.EventService, cached bool) ([]domain.Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if cached {
		snapshot, err := events.Latest(ctx)
		if err != nil {
			return nil, explain(err)
		}
		return snapshot.Events, nil
	}

	loaded, err := events.List(ctx)
	if err != nil {
		return nil, explain(err)
	}
	return loaded, nil
}

// explain adds a next step to errors the user can fix.
func explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		return fmt.Errorf("%w\nRun 'eventbox config init' to set them", err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("no snapshot stored: %w\nRun 'eventbox sync' first", err)
	case errors.Is(err, domain.ErrRateLimited):
		return fmt.Errorf("%w by Notion, try again shortly", err)
	default:
		return err
	}
}

func outputEvents(cmd *cobra.Command, events driving.EventService, loaded []domain.Event) {
	if len(loaded) == 0 {
		cmd.Println("No events found.")
		return
	}

	for i, e := range loaded {
		header := e.Header
		if header == "" {
			header = "(Untitled)"
		}
		if e.Date != "" {
			cmd.Printf("[%d] %s (%s)\n", i+1, header, e.Date)
		} else {
			cmd.Printf("[%d] %s\n", i+1, header)
		}

		text := markup.StripTags(events.Display(e, listFull))
		for _, line := range strings.Split(text, "\n") {
			if line != "" {
				cmd.Printf("    %s\n", line)
			}
		}
		cmd.Println()
	}
}

// listedEvent is the JSON form of an event.
type listedEvent struct {
	ID      string `json:"id"`
	Header  string `json:"header"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
}

func outputEventsJSON(cmd *cobra.Command, events driving.EventService, loaded []domain.Event) error {
	out := make([]listedEvent, len(loaded))
	for i, e := range loaded {
		out[i] = listedEvent{
			ID:      e.ID,
			Header:  e.Header,
			Date:    e.Date,
			URL:     e.URL,
			Content: events.Display(e, listFull),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
