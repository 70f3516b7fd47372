// Package sqlite provides a SQLite-based implementation of the driven StateSlot port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Slots live in the state_slots table, one row per key.
//
// # Data Location
//
// By default, the database is stored at ~/.docket/data/docket.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
