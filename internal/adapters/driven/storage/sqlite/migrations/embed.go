// Package migrations holds the versioned snapshot schema for the SQLite store.
// Files are named NNN_name.up.sql / NNN_name.down.sql and applied in order.
package migrations

import "embed"

// FS exposes the migration files to the store at runtime.
//
//go:embed *.sql
var FS embed.FS
