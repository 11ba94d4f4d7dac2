// Package sqlite provides a SQLite-based implementation of driven.EventStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. Snapshots and their events live in two tables; events are kept in
// fetch order.
//
// # Data Location
//
// By default, the database is stored at ~/.eventbox/data/events.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The store uses database-level
// locking provided by SQLite in WAL mode.
package sqlite
