// Package connectors provides implementations of the EventSource interface.
// Each connector knows how to fetch events from a specific source type
// (currently Notion databases).
package connectors
