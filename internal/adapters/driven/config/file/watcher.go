package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/eventbox/internal/logger"
)

// reloadDelay coalesces the bursts of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// change is what a file event asks the watcher to reload.
type change int

const (
	changeNone change = iota
	changeConfig
	changeTemplates
)

// Watcher reloads a ConfigStore, and optionally a TemplateStore, when their
// files change on disk.
type Watcher struct {
	store     *ConfigStore
	templates *TemplateStore
	onReload  func()
}

// NewWatcher creates a watcher for store.
// onReload is called after every successful config reload; it may be nil.
func NewWatcher(store *ConfigStore, onReload func()) *Watcher {
	return &Watcher{store: store, onReload: onReload}
}

// WithTemplates also watches the template directory and drops the template
// cache when a template file changes.
func (w *Watcher) WithTemplates(templates *TemplateStore) *Watcher {
	w.templates = templates
	return w
}

// Run watches the config directory until ctx is cancelled.
// Directories are watched rather than files so that editors which
// replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.store.Path())); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}
	logger.Debug("config: watching %s", w.store.Path())

	if w.templates != nil {
		if err := os.MkdirAll(w.templates.Dir(), 0700); err != nil {
			return fmt.Errorf("create template directory: %w", err)
		}
		if err := fw.Add(w.templates.Dir()); err != nil {
			return fmt.Errorf("watch template directory: %w", err)
		}
		logger.Debug("templates: watching %s", w.templates.Dir())
	}

	var timer *time.Timer
	var fire <-chan time.Time
	var pending map[change]bool
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			c := w.classify(event)
			if c == changeNone {
				continue
			}
			if pending == nil {
				pending = make(map[change]bool)
			}
			pending[c] = true
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watcher error: %v", err)
		case <-fire:
			fire = nil
			if pending[changeConfig] {
				w.reload()
			}
			if pending[changeTemplates] {
				w.reloadTemplates()
			}
			pending = nil
		}
	}
}

// classify reports what event should trigger a reload of.
func (w *Watcher) classify(event fsnotify.Event) change {
	name := filepath.Clean(event.Name)
	if name == filepath.Clean(w.store.Path()) {
		if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
			return changeConfig
		}
		return changeNone
	}

	if w.templates == nil || filepath.Dir(name) != filepath.Clean(w.templates.Dir()) ||
		!strings.HasSuffix(name, templateExt) {
		return changeNone
	}
	// A removed template falls back to its default, so removal counts too.
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return changeTemplates
	}
	return changeNone
}

func (w *Watcher) reloadTemplates() {
	w.templates.Reload()
	logger.Info("templates: reloaded %s", w.templates.Dir())
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		logger.Warn("config: reload failed, keeping previous values: %v", err)
		return
	}
	logger.Info("config: reloaded %s", w.store.Path())
	if w.onReload != nil {
		w.onReload()
	}
}
