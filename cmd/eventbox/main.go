// Command eventbox browses events stored in a Notion database.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/eventbox/internal/adapters/driven/config/file"
	"github.com/custodia-labs/eventbox/internal/adapters/driven/metrics"
	"github.com/custodia-labs/eventbox/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/cli"
	"github.com/custodia-labs/eventbox/internal/adapters/driving/web"
	"github.com/custodia-labs/eventbox/internal/connectors/notion"
	"github.com/custodia-labs/eventbox/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the application for a configuration directory.
func bootstrap(configDir string) (*cli.Dependencies, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	templates, err := file.NewTemplateStore(filepath.Join(configDir, "templates"), web.DefaultTemplates())
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	settings := services.NewSettingsService(configStore)
	events := services.NewEventService(notion.New(), store, settings)

	recorder := metrics.NewRecorder()
	events.SetObserver(recorder)

	watcher := file.NewWatcher(configStore, nil).WithTemplates(templates)

	return &cli.Dependencies{
		Events:     events,
		Settings:   settings,
		Scheduler:  services.NewScheduler(events),
		Templates:  templates,
		Metrics:    recorder,
		Watcher:    watcher,
		ConfigPath: configStore.Path(),
		Close:      store.Close,
	}, nil
}
