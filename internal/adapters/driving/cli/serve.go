package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eventbox/internal/adapters/driving/web"
	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/logger"
)

// defaultCachedSchedule refreshes the snapshot when serving cached pages
// and sync.schedule is empty.
const defaultCachedSchedule = "@every 15m"

var (
	serveAddr  string
	serveTitle string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve events over HTTP",
	Long: `Starts a web server showing events as an HTML page.

Routes:
  /             events page
  /events.json  events as JSON
  /healthz      liveness check
  /metrics      Prometheus metrics

In live mode (server.mode = live) every request fetches from Notion. In cached
mode the latest snapshot is served and refreshed on sync.schedule.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	serveCmd.Flags().StringVar(&serveTitle, "title", web.DefaultTitle, "page heading")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	events, err := eventService()
	if err != nil {
		return err
	}

	settings := domain.DefaultSettings()
	if deps.Settings != nil {
		settings, err = deps.Settings.Get()
		if err != nil {
			return err
		}
		if err := deps.Settings.Validate(); err != nil {
			// The server still starts; pages report the problem until fixed.
			logger.Warn("serve: %v", explain(err))
		}
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	renderer := web.NewRenderer(events, deps.Templates)
	renderer.SetTitle(serveTitle)
	opts := []web.Option{web.WithRenderer(renderer)}
	if deps.Metrics != nil {
		opts = append(opts, web.WithMetrics(deps.Metrics.Handler(), deps.Metrics))
	}

	server, err := web.NewServer(&web.Ports{Events: events, Settings: deps.Settings}, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if deps.Watcher != nil {
		go func() {
			if err := deps.Watcher.Run(ctx); err != nil {
				logger.Warn("serve: config watcher stopped: %v", err)
			}
		}()
	}

	if spec := refreshSchedule(settings); spec != "" && deps.Scheduler != nil {
		go runScheduler(ctx, spec)
	}

	cmd.Printf("Serving %s events on %s\n", settings.Server.Mode, addr)
	return server.Run(ctx, addr)
}

// refreshSchedule returns the cron spec for background refreshes, or "".
func refreshSchedule(settings domain.Settings) string {
	if settings.Sync.Schedule != "" {
		return settings.Sync.Schedule
	}
	if settings.Server.Mode == domain.ServeModeCached {
		return defaultCachedSchedule
	}
	return ""
}

func runScheduler(ctx context.Context, spec string) {
	defer deps.Scheduler.Stop()
	if err := deps.Scheduler.Start(ctx, spec); err != nil {
		logger.Error("serve: scheduler stopped: %v", err)
	}
}
