package menucache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ksindesign/little-lemon-rn/internal/sqlite"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

func setupStore(t *testing.T) types.MenuStore {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	require.NoError(t, b.InitMenuSchema(context.Background()))
	menu, err := b.Menu()
	require.NoError(t, err)
	return menu
}

func remoteMenu(names ...string) []types.MenuItem {
	items := make([]types.MenuItem, len(names))
	for i, n := range names {
		items[i] = types.MenuItem{Name: n, Price: 1, Description: "d", Image: "i.jpg", Category: "Mains"}
	}
	return items
}

func itemNames(items []types.MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestLoader(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T, store types.MenuStore, src *MockSource)
	}{
		{
			name: "empty store fetches once then serves from the store",
			check: func(t *testing.T, store types.MenuStore, src *MockSource) {
				src.EXPECT().Fetch(gomock.Any()).Return(remoteMenu("Pasta", "Fish"), nil).Times(1)
				l := &Loader{Store: store, Source: src}

				got, err := l.Load(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"Pasta", "Fish"}, itemNames(got))

				got, err = l.Load(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"Pasta", "Fish"}, itemNames(got))
			},
		},
		{
			name: "populated store never fetches",
			check: func(t *testing.T, store types.MenuStore, src *MockSource) {
				require.NoError(t, store.ReplaceAll(ctx, remoteMenu("Soup")))
				src.EXPECT().Fetch(gomock.Any()).Times(0)

				got, err := (&Loader{Store: store, Source: src}).Load(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"Soup"}, itemNames(got))
			},
		},
		{
			name: "fetch error writes nothing",
			check: func(t *testing.T, store types.MenuStore, src *MockSource) {
				boom := errors.New("network down")
				src.EXPECT().Fetch(gomock.Any()).Return(nil, boom)

				_, err := (&Loader{Store: store, Source: src}).Load(ctx)
				assert.ErrorIs(t, err, boom)
				assert.False(t, store.HasItems(ctx))
			},
		},
		{
			name: "invalid fetched items keep the store empty",
			check: func(t *testing.T, store types.MenuStore, src *MockSource) {
				bad := remoteMenu("Pasta")
				bad[0].Image = ""
				src.EXPECT().Fetch(gomock.Any()).Return(bad, nil)

				_, err := (&Loader{Store: store, Source: src}).Load(ctx)
				assert.ErrorIs(t, err, types.ErrInvalidMenuItem)
				assert.False(t, store.HasItems(ctx))
			},
		},
		{
			name: "refresh replaces a populated snapshot",
			check: func(t *testing.T, store types.MenuStore, src *MockSource) {
				require.NoError(t, store.ReplaceAll(ctx, remoteMenu("Old")))
				src.EXPECT().Fetch(gomock.Any()).Return(remoteMenu("New1", "New2"), nil)

				got, err := (&Loader{Store: store, Source: src}).Refresh(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"New1", "New2"}, itemNames(got))
			},
		},
		{
			name: "failed refresh keeps the old snapshot",
			check: func(t *testing.T, store types.MenuStore, src *MockSource) {
				require.NoError(t, store.ReplaceAll(ctx, remoteMenu("Old")))
				src.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("503"))

				_, err := (&Loader{Store: store, Source: src}).Refresh(ctx)
				require.Error(t, err)
				all, err := store.GetAll(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"Old"}, itemNames(all))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tt.check(t, setupStore(t), NewMockSource(ctrl))
		})
	}
}
