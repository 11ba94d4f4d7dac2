package cli

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch events and store a snapshot",
	Long: `Fetches events from Notion and stores them as a snapshot.
Snapshots back 'list --cached', 'render --cached' and the cached serve mode.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	events, err := eventService()
	if err != nil {
		return err
	}

	cmd.Println("Fetching events...")
	snapshot, err := events.Refresh(cmd.Context())
	if err != nil {
		return explain(err)
	}

	cmd.Printf("Stored %d events in snapshot %s.\n", len(snapshot.Events), snapshot.ID)
	return nil
}
