// Package menucache implements the fetch-once menu flow: serve the local
// snapshot when it has rows, otherwise fetch the remote document and store it.
package menucache

//go:generate mockgen -source=loader.go -destination=mock_source_test.go -package=menucache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ksindesign/little-lemon-rn/internal/logging"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// Source yields a full menu.
type Source interface {
	Fetch(ctx context.Context) ([]types.MenuItem, error)
}

// Loader connects a menu store to its remote source. There is no TTL: once
// populated, the store is served until Refresh is called or it is emptied.
type Loader struct {
	Store  types.MenuStore
	Source Source
	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return logging.Discard()
	}
	return l.Logger
}

// Load returns the cached menu, fetching and storing it first when the store
// is empty. A fetch error leaves the store untouched.
func (l *Loader) Load(ctx context.Context) ([]types.MenuItem, error) {
	if l.Store.HasItems(ctx) {
		l.logger().DebugContext(ctx, "menu.load.cached")
		return l.Store.GetAll(ctx)
	}
	if err := l.fill(ctx, "menu.load.fetched"); err != nil {
		return nil, err
	}
	return l.Store.GetAll(ctx)
}

// Refresh fetches and replaces the snapshot whatever the store holds.
func (l *Loader) Refresh(ctx context.Context) ([]types.MenuItem, error) {
	if err := l.fill(ctx, "menu.refresh.fetched"); err != nil {
		return nil, err
	}
	return l.Store.GetAll(ctx)
}

func (l *Loader) fill(ctx context.Context, event string) error {
	start := time.Now()
	items, err := l.Source.Fetch(ctx)
	if err != nil {
		l.logger().WarnContext(ctx, "menu.fetch.failed", "error", err)
		return fmt.Errorf("fetching menu: %w", err)
	}
	if err := l.Store.ReplaceAll(ctx, items); err != nil {
		return fmt.Errorf("storing menu: %w", err)
	}
	l.logger().InfoContext(ctx, event, "items", len(items), "duration", time.Since(start))
	return nil
}
