// Package sqlite provides the SQLite-backed freelancer repository.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The schema is managed
// through versioned migrations embedded from the migrations/ directory.
//
// By default the database is stored at ~/.matchengine/data/marketplace.db.
// All operations are thread-safe; the store relies on SQLite's own locking
// in WAL mode.
package sqlite
