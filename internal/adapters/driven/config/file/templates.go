package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// templateExt is the extension of template files on disk.
const templateExt = ".html.tmpl"

// TemplateStore loads page templates from user-editable files on disk.
// Missing or unreadable files fall back to the built-in defaults.
//
// Files are created lazily on the first Load, not in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	defaults map[string]string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// NewTemplateStore creates a template store rooted at dir.
// If dir is empty, defaults to ~/.eventbox/templates.
func NewTemplateStore(dir string, defaults map[string]string) (*TemplateStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "templates")
	}

	return &TemplateStore{
		dir:      dir,
		defaults: defaults,
		cache:    make(map[string]string),
	}, nil
}

// Load returns the template for name.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if tmpl, ok := s.defaults[name]; ok {
			return tmpl, nil
		}
		return "", fmt.Errorf("template store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	tmpl, err := s.loadFromFile(name)
	if err != nil {
		if fallback, ok := s.defaults[name]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// Path returns the file path for a named template.
func (s *TemplateStore) Path(name string) string {
	return filepath.Join(s.dir, name+templateExt)
}

// initialise creates the directory and writes defaults that are missing.
// Existing files are never overwritten.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for name, content := range s.defaults {
		path := s.Path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
