package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
)

// PageTemplate is the template name of the events page.
const PageTemplate = "page"

// DefaultTitle is the heading of the events page.
const DefaultTitle = "Events"

//go:embed templates/page.html.tmpl
var defaultPage string

// DefaultTemplates returns the built-in templates keyed by name.
func DefaultTemplates() map[string]string {
	return map[string]string{PageTemplate: defaultPage}
}

// PageData is the data passed to the page template.
type PageData struct {
	Title     string
	Events    []PageEvent
	FetchedAt time.Time
}

// PageEvent is one event prepared for the page template.
// Preview and Full are trusted markup produced by the event service.
type PageEvent struct {
	ID        string
	Header    string
	Date      string
	URL       string
	Preview   template.HTML
	Full      template.HTML
	Truncated bool
}

// Renderer renders the events page.
type Renderer struct {
	events    driving.EventService
	templates driven.TemplateStore
	title     string
}

// NewRenderer creates a renderer. templates may be nil to use the built-in page.
func NewRenderer(events driving.EventService, templates driven.TemplateStore) *Renderer {
	return &Renderer{events: events, templates: templates, title: DefaultTitle}
}

// SetTitle sets the page heading.
func (r *Renderer) SetTitle(title string) {
	r.title = title
}

// Data prepares template data for events.
// fetchedAt is shown in the footer unless zero.
func (r *Renderer) Data(events []domain.Event, fetchedAt time.Time) PageData {
	data := PageData{
		Title:     r.title,
		Events:    make([]PageEvent, len(events)),
		FetchedAt: fetchedAt,
	}
	for i, e := range events {
		full := r.events.Display(e, true)
		preview := r.events.Display(e, false)
		data.Events[i] = PageEvent{
			ID:     e.ID,
			Header: e.Header,
			Date:   e.Date,
			URL:    e.URL,
			//nolint:gosec // G203: span text is escaped and anchors only carry http, https or mailto hrefs.
			Preview: template.HTML(preview),
			//nolint:gosec // G203: see above.
			Full:      template.HTML(full),
			Truncated: preview != full,
		}
	}
	return data
}

// Render writes the page for events to w.
func (r *Renderer) Render(w io.Writer, events []domain.Event, fetchedAt time.Time) error {
	tmpl, err := r.template()
	if err != nil {
		return err
	}

	// A template error must not leave a partial page.
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.Data(events, fetchedAt)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *Renderer) template() (*template.Template, error) {
	source := defaultPage
	if r.templates != nil {
		loaded, err := r.templates.Load(PageTemplate)
		if err != nil {
			return nil, fmt.Errorf("load page template: %w", err)
		}
		source = loaded
	}

	tmpl, err := template.New(PageTemplate).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return tmpl, nil
}
