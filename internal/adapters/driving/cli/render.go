package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eventbox/internal/adapters/driving/web"
	"github.com/custodia-labs/eventbox/internal/core/domain"
)

var (
	renderOut    string
	renderCached bool
	renderTitle  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render events as a static HTML page",
	Long: `Renders events with the page template and writes the HTML to stdout or a file.
The template is read from the templates directory in the configuration
directory and can be edited freely.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write the page to this file instead of stdout")
	renderCmd.Flags().BoolVar(&renderCached, "cached", false, "use the last synced snapshot")
	renderCmd.Flags().StringVar(&renderTitle, "title", web.DefaultTitle, "page heading")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	events, err := eventService()
	if err != nil {
		return err
	}

	var (
		loaded    []domain.Event
		fetchedAt time.Time
	)
	if renderCached {
		snapshot, err := events.Latest(cmd.Context())
		if err != nil {
			return explain(err)
		}
		loaded, fetchedAt = snapshot.Events, snapshot.FetchedAt
	} else {
		loaded, err = events.List(cmd.Context())
		if err != nil {
			return explain(err)
		}
		fetchedAt = time.Now()
	}

	renderer := web.NewRenderer(events, deps.Templates)
	renderer.SetTitle(renderTitle)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, loaded, fetchedAt); err != nil {
		return err
	}

	if renderOut == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(renderOut, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: the page is meant to be shared
		return fmt.Errorf("write page: %w", err)
	}
	cmd.PrintErrf("Wrote %d events to %s\n", len(loaded), renderOut)
	return nil
}
