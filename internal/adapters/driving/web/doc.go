// Package web serves events as an HTML page and JSON over HTTP.
//
// Routes:
//   - GET /             HTML page; collapsed content expands to the full text
//   - GET /events.json  events with full linkified content
//   - GET /healthz      liveness check
//   - GET /metrics      Prometheus metrics, when a handler is configured
//
// In live mode every request queries Notion. In cached mode the latest
// stored snapshot is served; a scheduler keeps it fresh.
package web
