// Package sqlite implements the embedded SQLite store behind the littlelemon
// data layer: schema management, the singleton user table and the menu
// snapshot table.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/ksindesign/little-lemon-rn/internal/logging"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// Compile-time interface check.
var _ types.DataStore = (*Backend)(nil)

// dsnParams are applied to every pooled connection. busy_timeout goes first
// so a second connection waits for a writer instead of failing with
// SQLITE_BUSY; write transactions take the lock up front.
const dsnParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate"

// Backend owns the process-wide database handle and serves the user and
// menu stores. Writers (schema init, SaveUser, ClearUser, ReplaceAll) hold
// mu exclusively; readers share it.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dbPath   string
	db       *sql.DB
	logger   *slog.Logger

	users *usersTable
	menu  *menuTable
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the structured logger used for store events. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to open the store.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.users = &usersTable{backend: b}
	b.menu = &menuTable{backend: b}
	return b
}

// Attach opens (or creates) the database file in config.DataDir. Existing
// data is kept. Schema creation is separate; see Init.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, types.DatabaseFile)
	db, err := sql.Open("sqlite", dbPath+dsnParams)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("pinging %s: %w", dbPath, err)
	}

	b.db = db
	b.dbPath = dbPath
	b.config = config
	b.attached = true

	b.logger.Debug("store.attached", "path", dbPath)
	return nil
}

// Detach closes the database handle. After Detach, store operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.logger.Debug("store.detached", "path", b.dbPath)
	return nil
}

// Users returns the user store. Returns ErrDetached if not attached.
func (b *Backend) Users() (types.UserStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.users, nil
}

// Menu returns the menu store. Returns ErrDetached if not attached.
func (b *Backend) Menu() (types.MenuStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.menu, nil
}

// Path returns the database file path, or "" before the first Attach.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dbPath
}
