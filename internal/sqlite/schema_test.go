package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

func TestInitUserSchema(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		legacy string // DDL run before InitUserSchema, if any
		check  func(t *testing.T, b *Backend)
	}{
		{
			name: "fresh store gets the five user columns",
			check: func(t *testing.T, b *Backend) {
				cols, err := b.Columns(ctx, UsersTable)
				require.NoError(t, err)
				assert.Equal(t, UserColumns, cols)
			},
		},
		{
			name: "running init twice never fails and keeps five columns",
			check: func(t *testing.T, b *Backend) {
				require.NoError(t, b.InitUserSchema(ctx))
				require.NoError(t, b.InitUserSchema(ctx))
				cols, err := b.Columns(ctx, UsersTable)
				require.NoError(t, err)
				assert.Equal(t, UserColumns, cols)
			},
		},
		{
			name: "legacy table without profilePic gains the column",
			legacy: `CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				firstName TEXT NOT NULL,
				lastName TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE
			);
			INSERT INTO users (firstName, lastName, email) VALUES ('Old', 'Timer', 'old@example.com');`,
			check: func(t *testing.T, b *Backend) {
				cols, err := b.Columns(ctx, UsersTable)
				require.NoError(t, err)
				assert.Equal(t, UserColumns, cols)

				users, err := b.Users()
				require.NoError(t, err)
				got, found, err := users.GetUser(ctx)
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, "old@example.com", got.Email)
				assert.Empty(t, got.ProfilePic)
			},
		},
		{
			name: "unversioned table that already has profilePic is adopted",
			legacy: `CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				firstName TEXT NOT NULL,
				lastName TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				profilePic TEXT
			);`,
			check: func(t *testing.T, b *Backend) {
				cols, err := b.Columns(ctx, UsersTable)
				require.NoError(t, err)
				assert.Equal(t, UserColumns, cols)
			},
		},
		{
			name:   "failures other than duplicate column surface as SchemaError",
			legacy: `CREATE VIEW users AS SELECT 1 AS id, 'a' AS firstName, 'b' AS lastName, 'c' AS email;`,
			check:  nil, // asserted below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := attachBackend(t, t.TempDir())
			if tt.legacy != "" {
				_, err := b.db.Exec(tt.legacy)
				require.NoError(t, err)
			}

			err := b.InitUserSchema(ctx)
			if tt.check == nil {
				var se *types.SchemaError
				require.True(t, errors.As(err, &se), "expected SchemaError, got %v", err)
				assert.Equal(t, "init users schema", se.Op)
				return
			}
			require.NoError(t, err)
			tt.check(t, b)
		})
	}
}

func TestInitMenuSchema(t *testing.T) {
	ctx := context.Background()
	b := attachBackend(t, t.TempDir())

	require.NoError(t, b.InitMenuSchema(ctx))
	require.NoError(t, b.InitMenuSchema(ctx))

	cols, err := b.Columns(ctx, MenuTable)
	require.NoError(t, err)
	assert.Equal(t, MenuColumns, cols)

	users, err := b.Columns(ctx, UsersTable)
	require.NoError(t, err)
	assert.Empty(t, users, "menu init must not create the users table")
}

func TestInitCreatesNoData(t *testing.T) {
	b := setupBackend(t)
	assert.Equal(t, 0, countRows(t, b, UsersTable))
	assert.Equal(t, 0, countRows(t, b, MenuTable))
}

func TestIsDuplicateColumn(t *testing.T) {
	b := setupBackend(t)

	_, err := b.db.Exec("ALTER TABLE users ADD COLUMN profilePic TEXT")
	require.Error(t, err)
	assert.True(t, isDuplicateColumn(err))

	_, err = b.db.Exec("ALTER TABLE no_such_table ADD COLUMN x TEXT")
	require.Error(t, err)
	assert.False(t, isDuplicateColumn(err))

	assert.False(t, isDuplicateColumn(nil))
}
