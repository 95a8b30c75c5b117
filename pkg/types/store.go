package types

import "context"

// DataStore is the local data layer: attach to a backend, create the schema,
// then reach the user and menu stores. Detach releases the handle.
type DataStore interface {
	// Attach opens the backend described by config, creating DataDir if
	// needed. Returns ErrAlreadyAttached when already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Init ensures both the user and the menu schema exist.
	Init(ctx context.Context) error

	// InitUserSchema ensures the users table exists with every column,
	// adding profilePic to tables created without it.
	InitUserSchema(ctx context.Context) error

	// InitMenuSchema ensures the menu table exists.
	InitMenuSchema(ctx context.Context) error

	// Columns lists the columns of table in declaration order.
	Columns(ctx context.Context, table string) ([]string, error)

	Users() (UserStore, error)
	Menu() (MenuStore, error)
}

// UserStore holds the single logical user profile.
type UserStore interface {
	// GetUser returns the stored profile. found is false, with a nil error,
	// when no profile exists.
	GetUser(ctx context.Context) (profile UserProfile, found bool, err error)

	// SaveUser overwrites the existing profile or inserts one when none
	// exists. Returns the stored profile with its assigned ID.
	SaveUser(ctx context.Context, profile UserProfile) (UserProfile, error)

	// ClearUser deletes every profile row. Idempotent.
	ClearUser(ctx context.Context) error
}

// MenuStore holds the current menu snapshot.
type MenuStore interface {
	// HasItems reports whether the snapshot is non-empty. Internal errors
	// are reported as false.
	HasItems(ctx context.Context) bool

	// ReplaceAll discards the current snapshot and stores items in the
	// given order, atomically.
	ReplaceAll(ctx context.Context, items []MenuItem) error

	// GetAll returns every item in the snapshot. Returns an empty slice,
	// not nil, when the snapshot is empty.
	GetAll(ctx context.Context) ([]MenuItem, error)

	// Filter returns the items matching f. A zero MenuFilter matches all.
	Filter(ctx context.Context, f MenuFilter) ([]MenuItem, error)

	// Count returns the number of items in the snapshot.
	Count(ctx context.Context) (int, error)

	// Categories returns the distinct categories in the snapshot, compared
	// without case.
	Categories(ctx context.Context) ([]string, error)
}
