package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/markup"
)

// uriScheme is the custom URI scheme for eventbox resources.
const uriScheme = "eventbox://"

// registerResources registers all resource handlers with the MCP server.
// Resources read the latest stored snapshot and never call Notion.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "events",
		Name:        "events",
		Description: "Events in the latest stored snapshot",
		MIMEType:    "application/json",
	}, s.handleEventsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "events/{eventId}",
		Name:        "event-content",
		Description: "Full plain-text content of a single event",
		MIMEType:    "text/plain",
	}, s.handleEventContentResource)
}

// handleEventsResource returns the latest snapshot as JSON.
func (s *Server) handleEventsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snapshot, err := s.latest(ctx, req.Params.URI)
	if err != nil {
		return nil, err
	}

	type eventInfo struct {
		ID     string `json:"id"`
		Header string `json:"header"`
		Date   string `json:"date,omitempty"`
		URI    string `json:"uri"`
	}

	infos := make([]eventInfo, len(snapshot.Events))
	for i, e := range snapshot.Events {
		infos[i] = eventInfo{
			ID:     e.ID,
			Header: e.Header,
			Date:   e.Date,
			URI:    uriScheme + "events/" + e.ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling events: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEventContentResource returns the full content of one event.
func (s *Server) handleEventContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	eventID := extractEventID(req.Params.URI)
	if eventID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snapshot, err := s.latest(ctx, req.Params.URI)
	if err != nil {
		return nil, err
	}

	for _, e := range snapshot.Events {
		if e.ID != eventID {
			continue
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     markup.StripTags(s.ports.Events.Display(e, true)),
			}},
		}, nil
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// latest returns the latest snapshot. Only a missing snapshot is reported as
// resource not found; storage failures are returned as they are.
func (s *Server) latest(ctx context.Context, uri string) (*domain.Snapshot, error) {
	snapshot, err := s.ports.Events.Latest(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("reading latest snapshot: %w", err)
	}
	return snapshot, nil
}

// extractEventID extracts the event ID from a URI like eventbox://events/{eventId}.
func extractEventID(uri string) string {
	const prefix = uriScheme + "events/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
