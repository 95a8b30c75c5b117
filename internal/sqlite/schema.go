package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// Table names.
const (
	UsersTable = "users"
	MenuTable  = "menu"
)

// Expected columns per table, in declaration order.
var (
	UserColumns = []string{"id", "firstName", "lastName", "email", "profilePic"}
	MenuColumns = []string{"id", "name", "price", "description", "image", "category"}
)

//go:embed migrations
var migrationsFS embed.FS

// schemaSet is one independently versioned group of migrations. Each table
// family keeps its own goose version table so the two init calls stay
// independent of each other.
type schemaSet struct {
	op           string // operation name reported in SchemaError
	dir          string // directory under migrations/
	versionTable string
	goMigrations func(b *Backend) []*goose.Migration
}

var (
	userSchema = schemaSet{
		op:           "init users schema",
		dir:          "migrations/users",
		versionTable: "users_schema_version",
		goMigrations: func(b *Backend) []*goose.Migration {
			return []*goose.Migration{
				goose.NewGoMigration(2, &goose.GoFunc{RunTx: b.addProfilePicColumn}, nil),
			}
		},
	}
	menuSchema = schemaSet{
		op:           "init menu schema",
		dir:          "migrations/menu",
		versionTable: "menu_schema_version",
	}
)

// Init ensures both tables exist. It is what the application calls once at
// startup.
func (b *Backend) Init(ctx context.Context) error {
	if err := b.InitUserSchema(ctx); err != nil {
		return err
	}
	return b.InitMenuSchema(ctx)
}

// InitUserSchema idempotently ensures the users table exists, including the
// profilePic column on stores created before it was introduced. Failures are
// returned as *types.SchemaError.
func (b *Backend) InitUserSchema(ctx context.Context) error {
	return b.migrate(ctx, userSchema)
}

// InitMenuSchema idempotently ensures the menu table exists. Failures are
// returned as *types.SchemaError.
func (b *Backend) InitMenuSchema(ctx context.Context) error {
	return b.migrate(ctx, menuSchema)
}

func (b *Backend) migrate(ctx context.Context, set schemaSet) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return &types.SchemaError{Op: set.op, Err: types.ErrDetached}
	}

	sub, err := fs.Sub(migrationsFS, set.dir)
	if err != nil {
		return &types.SchemaError{Op: set.op, Err: fmt.Errorf("opening %s: %w", set.dir, err)}
	}

	opts := []goose.ProviderOption{
		goose.WithTableName(set.versionTable),
		goose.WithDisableGlobalRegistry(true),
		goose.WithSlog(b.logger),
	}
	if set.goMigrations != nil {
		opts = append(opts, goose.WithGoMigrations(set.goMigrations(b)...))
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, b.db, sub, opts...)
	if err != nil {
		return &types.SchemaError{Op: set.op, Err: fmt.Errorf("creating migration provider: %w", err)}
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return &types.SchemaError{Op: set.op, Err: err}
	}
	for _, r := range results {
		b.logger.DebugContext(ctx, "schema.migration.applied",
			"set", set.dir, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// addProfilePicColumn adds users.profilePic when it is missing. Only the
// "duplicate column" failure is tolerated; anything else aborts the
// migration.
func (b *Backend) addProfilePicColumn(ctx context.Context, tx *sql.Tx) error {
	cols, err := tableColumns(ctx, tx, UsersTable)
	if err != nil {
		return err
	}
	for _, c := range cols {
		if c == "profilePic" {
			return nil
		}
	}

	_, err = tx.ExecContext(ctx, "ALTER TABLE users ADD COLUMN profilePic TEXT")
	if isDuplicateColumn(err) {
		b.logger.WarnContext(ctx, "schema.users.profile_pic_exists", "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("adding users.profilePic: %w", err)
	}
	return nil
}

// Columns returns the column names of table in declaration order. An
// unknown table yields an empty slice.
func (b *Backend) Columns(ctx context.Context, table string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, &types.StorageError{Op: "list columns", Err: types.ErrDetached}
	}
	cols, err := tableColumns(ctx, b.db, table)
	if err != nil {
		return nil, &types.StorageError{Op: "list columns", Err: err}
	}
	return cols, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func tableColumns(ctx context.Context, q queryer, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", table, err)
	}
	return cols, nil
}

// columnList renders cols for a SELECT clause.
func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
