package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

func TestNewBackend(t *testing.T) {
	ctx := context.Background()
	store := NewBackend(nil)
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { store.Detach() })
	require.NoError(t, store.Init(ctx))

	users, err := store.Users()
	require.NoError(t, err)
	_, found, err := users.GetUser(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	menu, err := store.Menu()
	require.NoError(t, err)
	assert.False(t, menu.HasItems(ctx))
}
