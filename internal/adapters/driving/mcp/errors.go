// Package mcp provides an MCP (Model Context Protocol) server adapter for eventbox.
// It lets AI assistants list upcoming events and read their content.
package mcp

import "errors"

// ErrMissingEventService is returned when the event service is not provided.
var ErrMissingEventService = errors.New("mcp: event service is required")
