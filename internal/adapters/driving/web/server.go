package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driving"
	"github.com/custodia-labs/eventbox/internal/logger"
)

// retryAfter is sent with 503 responses caused by Notion rate limiting.
const retryAfter = 30 * time.Second

// ErrMissingEventService is returned when the event service is not provided.
var ErrMissingEventService = errors.New("web: event service is required")

// RequestObserver is notified of every response.
type RequestObserver interface {
	ObserveRequest(path string, code int)
}

// Ports aggregates the driving ports used by the web server.
type Ports struct {
	Events   driving.EventService
	Settings driving.SettingsService
}

// Server serves events over HTTP.
type Server struct {
	ports    *Ports
	renderer *Renderer
	observer RequestObserver
	metrics  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithRenderer replaces the default page renderer.
func WithRenderer(r *Renderer) Option {
	return func(s *Server) { s.renderer = r }
}

// WithMetrics serves h on /metrics and reports responses to observer.
func WithMetrics(h http.Handler, observer RequestObserver) Option {
	return func(s *Server) {
		s.metrics = h
		s.observer = observer
	}
}

// NewServer creates a web server.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if ports == nil || ports.Events == nil {
		return nil, ErrMissingEventService
	}

	s := &Server{ports: ports}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = NewRenderer(ports.Events, nil)
	}
	return s, nil
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /events.json", s.handleJSON)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return s.observe(mux)
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("web: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	events, fetchedAt, err := s.load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, events, fetchedAt); err != nil {
		logger.Error("web: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	writeCached(w, r, "text/html; charset=utf-8", buf.Bytes())
}

// jsonEvent is the wire form of an event in /events.json.
type jsonEvent struct {
	ID      string `json:"id"`
	Header  string `json:"header"`
	Date    string `json:"date"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
	Preview string `json:"preview"`
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	events, _, err := s.load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		events = s.ports.Events.Filter(events, q)
	}

	out := make([]jsonEvent, len(events))
	for i, e := range events {
		out[i] = jsonEvent{
			ID:      e.ID,
			Header:  e.Header,
			Date:    e.Date,
			URL:     e.URL,
			Content: s.ports.Events.Display(e, true),
			Preview: s.ports.Events.Display(e, false),
		}
	}

	body, err := json.Marshal(out)
	if err != nil {
		http.Error(w, "failed to encode events", http.StatusInternalServerError)
		return
	}
	writeCached(w, r, "application/json", body)
}

// load returns events according to the configured serve mode.
// The fetch time is zero in live mode.
func (s *Server) load(ctx context.Context) ([]domain.Event, time.Time, error) {
	if s.mode() == domain.ServeModeCached {
		snapshot, err := s.ports.Events.Latest(ctx)
		if err != nil {
			return nil, time.Time{}, err
		}
		return snapshot.Events, snapshot.FetchedAt, nil
	}

	events, err := s.ports.Events.List(ctx)
	return events, time.Time{}, err
}

func (s *Server) mode() domain.ServeMode {
	if s.ports.Settings == nil {
		return domain.ServeModeLive
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.ServeModeLive
	}
	return settings.Server.Mode
}

// writeError maps service errors to HTTP responses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		http.Error(w, "eventbox is not configured: "+err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "no events have been synced yet", http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrRateLimited):
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		http.Error(w, "notion rate limit reached, try again shortly", http.StatusServiceUnavailable)
	default:
		logger.Error("web: fetch events: %v", err)
		http.Error(w, fmt.Sprintf("failed to fetch events: %v", err), http.StatusBadGateway)
	}
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// observe logs every request and reports it to the observer.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		logger.Debug("web: %s %s %d %s", r.Method, r.URL.Path, sw.code, time.Since(start))
		if s.observer != nil {
			s.observer.ObserveRequest(routeLabel(r.URL.Path), sw.code)
		}
	})
}

// routeLabel bounds metric label cardinality to the known routes.
func routeLabel(path string) string {
	switch path {
	case "/", "/events.json", "/healthz", "/metrics":
		return path
	default:
		return "other"
	}
}
