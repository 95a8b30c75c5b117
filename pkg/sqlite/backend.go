// Package sqlite provides the public API for the SQLite data store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/ksindesign/little-lemon-rn/internal/sqlite"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to open it.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: dataDir,
//	})
//	defer store.Detach()
//	err = store.Init(ctx)
func NewBackend(logger *slog.Logger) types.DataStore {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
