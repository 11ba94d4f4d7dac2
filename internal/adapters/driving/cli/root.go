// Package cli provides the eventbox command line interface.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
	"github.com/custodia-labs/eventbox/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var errNotConfigured = errors.New("event service not configured")

// MetricsRecorder serves metrics and counts HTTP responses.
type MetricsRecorder interface {
	ObserveRequest(path string, code int)
	Handler() http.Handler
}

// Watcher reloads configuration while a long-running command is active.
type Watcher interface {
	Run(ctx context.Context) error
}

// Dependencies holds the services commands operate on.
type Dependencies struct {
	Events    driving.EventService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler

	// Templates holds the user-editable page templates. Optional.
	Templates driven.TemplateStore

	// Metrics is optional; serve exposes /metrics when set.
	Metrics MetricsRecorder

	// Watcher is optional; serve runs it to pick up config edits.
	Watcher Watcher

	// ConfigPath is shown by config commands.
	ConfigPath string

	// Close releases resources such as the snapshot database.
	Close func() error
}

// Bootstrap builds dependencies for a configuration directory.
// An empty directory selects the default.
type Bootstrap func(configDir string) (*Dependencies, error)

var (
	bootstrap Bootstrap
	deps      *Dependencies
)

// SetBootstrap sets how dependencies are built before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "eventbox",
	Short: "Browse events from a Notion database",
	Long: `eventbox fetches events from a Notion database and shows them as a
terminal list, an interactive browser, a web page or an MCP tool.

Run 'eventbox config init' to connect a Notion integration.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.eventbox)")
}

// Execute runs the root command.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd == versionCmd || bootstrap == nil || deps != nil {
		return nil
	}

	d, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	deps = d
	return nil
}

func teardown() {
	if deps == nil || deps.Close == nil {
		return
	}
	if err := deps.Close(); err != nil {
		logger.Warn("close: %v", err)
	}
	deps.Close = nil
}

// eventService returns the configured event service.
func eventService() (driving.EventService, error) {
	if deps == nil || deps.Events == nil {
		return nil, errNotConfigured
	}
	return deps.Events, nil
}

// settingsService returns the configured settings service.
func settingsService() (driving.SettingsService, error) {
	if deps == nil || deps.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return deps.Settings, nil
}
