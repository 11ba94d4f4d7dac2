// Package domain defines the core business entities for eventbox.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Event: A calendar-like entry fetched from a Notion database
//   - Span: One rich text block, possibly carrying a hyperlink
//   - Snapshot: A stored fetch result
//   - Settings: Resolved application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
