package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// Operation names reported in StorageError.
const (
	opCountMenu      = "count menu"
	opReplaceMenu    = "replace menu"
	opGetMenu        = "get menu"
	opFilterMenu     = "filter menu"
	opMenuCategories = "list menu categories"
)

// Compile-time interface check.
var _ types.MenuStore = (*menuTable)(nil)

// menuTable holds a single snapshot that is only ever replaced wholesale.
type menuTable struct {
	backend *Backend
}

// HasItems is a cache-presence probe: any failure reads as "empty" so the
// caller falls back to fetching.
func (mt *menuTable) HasItems(ctx context.Context) bool {
	n, err := mt.Count(ctx)
	if err != nil {
		mt.backend.logger.WarnContext(ctx, "menu.has_items.failed", "error", err)
		return false
	}
	return n > 0
}

// Count returns the number of items in the snapshot.
func (mt *menuTable) Count(ctx context.Context) (int, error) {
	b := mt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, &types.StorageError{Op: opCountMenu, Err: types.ErrDetached}
	}

	var n int
	if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu").Scan(&n); err != nil {
		return 0, storageErr(opCountMenu, err)
	}
	return n, nil
}

// ReplaceAll deletes the snapshot and inserts items in order, in one
// transaction. On failure the previous snapshot is left untouched.
func (mt *menuTable) ReplaceAll(ctx context.Context, items []types.MenuItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return &types.StorageError{Op: opReplaceMenu, Err: err}
		}
	}

	b := mt.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return &types.StorageError{Op: opReplaceMenu, Err: types.ErrDetached}
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(opReplaceMenu, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu"); err != nil {
		return storageErr(opReplaceMenu, fmt.Errorf("clearing menu: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO menu (name, price, description, image, category) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return storageErr(opReplaceMenu, fmt.Errorf("preparing insert: %w", err))
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, item.Name, item.Price, item.Description, item.Image, item.Category); err != nil {
			return storageErr(opReplaceMenu, fmt.Errorf("inserting item %d (%s): %w", i, item.Name, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(opReplaceMenu, fmt.Errorf("committing menu: %w", err))
	}

	b.logger.DebugContext(ctx, "menu.replace_all.done", "items", len(items))
	return nil
}

// GetAll returns the whole snapshot in insertion order.
func (mt *menuTable) GetAll(ctx context.Context) ([]types.MenuItem, error) {
	return mt.query(ctx, opGetMenu, types.MenuFilter{})
}

// Filter returns the items matching f. See buildMenuQuery for the predicate.
func (mt *menuTable) Filter(ctx context.Context, f types.MenuFilter) ([]types.MenuItem, error) {
	items, err := mt.query(ctx, opFilterMenu, f)
	if err != nil {
		return nil, err
	}
	mt.backend.logger.DebugContext(ctx, "menu.filter.done",
		"categories", f.Categories, "search", f.Search, "items", len(items))
	return items, nil
}

// Categories returns the distinct categories in the snapshot, compared
// without case. The spelling of the first row wins; the result is sorted
// case-insensitively.
func (mt *menuTable) Categories(ctx context.Context) ([]string, error) {
	b := mt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, &types.StorageError{Op: opMenuCategories, Err: types.ErrDetached}
	}

	rows, err := b.db.QueryContext(ctx, "SELECT category FROM menu ORDER BY id")
	if err != nil {
		return nil, storageErr(opMenuCategories, err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, storageErr(opMenuCategories, fmt.Errorf("scanning category: %w", err))
		}
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(opMenuCategories, fmt.Errorf("iterating categories: %w", err))
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i]) < strings.ToLower(categories[j])
	})
	return categories, nil
}

func (mt *menuTable) query(ctx context.Context, op string, f types.MenuFilter) ([]types.MenuItem, error) {
	b := mt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, &types.StorageError{Op: op, Err: types.ErrDetached}
	}

	query, args := buildMenuQuery(f)
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	items := []types.MenuItem{}
	for rows.Next() {
		item, err := hydrateMenuItem(rows)
		if err != nil {
			return nil, storageErr(op, fmt.Errorf("hydrating menu item: %w", err))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, fmt.Errorf("iterating menu: %w", err))
	}
	return items, nil
}

func hydrateMenuItem(rows *sql.Rows) (types.MenuItem, error) {
	var m types.MenuItem
	err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Description, &m.Image, &m.Category)
	return m, err
}
