package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// Operation names reported in StorageError.
const (
	opGetUser   = "get user"
	opSaveUser  = "save user"
	opClearUser = "clear user"
)

// Compile-time interface check.
var _ types.UserStore = (*usersTable)(nil)

// usersTable keeps at most one row. Writes go through the backend write
// lock and a transaction, so concurrent SaveUser calls cannot both insert.
type usersTable struct {
	backend *Backend
}

// GetUser returns the first profile by id. found is false when the table is
// empty.
func (ut *usersTable) GetUser(ctx context.Context) (types.UserProfile, bool, error) {
	b := ut.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.UserProfile{}, false, &types.StorageError{Op: opGetUser, Err: types.ErrDetached}
	}

	row := b.db.QueryRowContext(ctx,
		"SELECT "+columnList(UserColumns)+" FROM users ORDER BY id LIMIT 1")
	p, err := hydrateUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.UserProfile{}, false, nil
	}
	if err != nil {
		return types.UserProfile{}, false, storageErr(opGetUser, err)
	}
	return p, true, nil
}

// SaveUser overwrites the existing row's four fields, or inserts a row when
// the table is empty. The lookup and the write share one transaction.
func (ut *usersTable) SaveUser(ctx context.Context, profile types.UserProfile) (types.UserProfile, error) {
	p := profile.Normalize()
	if !p.Complete() {
		return types.UserProfile{}, fmt.Errorf("%w: first name, last name and email are required", types.ErrInvalidProfile)
	}

	b := ut.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.UserProfile{}, &types.StorageError{Op: opSaveUser, Err: types.ErrDetached}
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return types.UserProfile{}, storageErr(opSaveUser, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	pic := sql.NullString{String: p.ProfilePic, Valid: p.ProfilePic != ""}

	var id int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM users ORDER BY id LIMIT 1").Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			"INSERT INTO users (firstName, lastName, email, profilePic) VALUES (?, ?, ?, ?)",
			p.FirstName, p.LastName, p.Email, pic)
		if err != nil {
			return types.UserProfile{}, storageErr(opSaveUser, fmt.Errorf("inserting user: %w", err))
		}
		if id, err = res.LastInsertId(); err != nil {
			return types.UserProfile{}, storageErr(opSaveUser, fmt.Errorf("reading user id: %w", err))
		}
	case err != nil:
		return types.UserProfile{}, storageErr(opSaveUser, fmt.Errorf("looking up user: %w", err))
	default:
		_, err = tx.ExecContext(ctx,
			"UPDATE users SET firstName = ?, lastName = ?, email = ?, profilePic = ? WHERE id = ?",
			p.FirstName, p.LastName, p.Email, pic, id)
		if err != nil {
			return types.UserProfile{}, storageErr(opSaveUser, fmt.Errorf("updating user %d: %w", id, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return types.UserProfile{}, storageErr(opSaveUser, fmt.Errorf("committing user: %w", err))
	}

	p.ID = id
	b.logger.DebugContext(ctx, "users.save.done", "id", id)
	return p, nil
}

// ClearUser deletes every row. Calling it on an empty table is a no-op.
func (ut *usersTable) ClearUser(ctx context.Context) error {
	b := ut.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return &types.StorageError{Op: opClearUser, Err: types.ErrDetached}
	}

	res, err := b.db.ExecContext(ctx, "DELETE FROM users")
	if err != nil {
		return storageErr(opClearUser, err)
	}
	n, _ := res.RowsAffected()
	b.logger.DebugContext(ctx, "users.clear.done", "rows", n)
	return nil
}

func hydrateUser(row *sql.Row) (types.UserProfile, error) {
	var p types.UserProfile
	var pic sql.NullString
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &pic); err != nil {
		return types.UserProfile{}, err
	}
	p.ProfilePic = pic.String
	return p, nil
}
