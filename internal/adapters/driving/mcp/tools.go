package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/markup"
)

// ListEventsInput is the input schema for the list_events tool.
type ListEventsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"fuzzy filter applied to event headers"`
	Full   bool   `json:"full,omitempty" jsonschema:"return full content instead of the truncated preview"`
	Cached bool   `json:"cached,omitempty" jsonschema:"read the latest stored snapshot instead of querying Notion"`
}

// ListEventsOutput is the output schema for the list_events tool.
type ListEventsOutput struct {
	Events []EventOutput `json:"events"`
	Count  int           `json:"count"`
}

// EventOutput represents a single event with plain-text content.
type EventOutput struct {
	ID      string `json:"id"`
	Header  string `json:"header"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_events",
		Description: "List events from the Notion events database",
	}, s.handleListEvents)
}

// handleListEvents handles the list_events tool invocation.
func (s *Server) handleListEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListEventsInput,
) (*mcp.CallToolResult, ListEventsOutput, error) {
	events, err := s.events(ctx, input.Cached)
	if err != nil {
		if errors.Is(err, domain.ErrConfigMissing) {
			return nil, ListEventsOutput{}, fmt.Errorf("%w: run `eventbox config init`", err)
		}
		return nil, ListEventsOutput{}, err
	}

	events = s.ports.Events.Filter(events, input.Query)

	output := ListEventsOutput{
		Events: make([]EventOutput, len(events)),
		Count:  len(events),
	}
	for i, e := range events {
		output.Events[i] = EventOutput{
			ID:      e.ID,
			Header:  e.Header,
			Date:    e.Date,
			URL:     e.URL,
			Content: markup.StripTags(s.ports.Events.Display(e, input.Full)),
		}
	}

	return nil, output, nil
}

// events returns live events or those of the latest snapshot.
func (s *Server) events(ctx context.Context, cached bool) ([]domain.Event, error) {
	if !cached {
		return s.ports.Events.List(ctx)
	}
	snapshot, err := s.ports.Events.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no snapshot stored yet: run `eventbox sync`: %w", err)
		}
		return nil, err
	}
	return snapshot.Events, nil
}
