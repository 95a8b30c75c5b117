package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// isDuplicateColumn reports whether err is SQLite's "duplicate column name"
// failure from ALTER TABLE ADD COLUMN. SQLite reports it as a plain
// SQLITE_ERROR, so the message is the only discriminator.
func isDuplicateColumn(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate column name")
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// storageErr wraps err as a StorageError for op. Unique violations also match
// types.ErrDuplicateEmail.
func storageErr(op string, err error) error {
	if isUniqueViolation(err) {
		err = fmt.Errorf("%w: %w", types.ErrDuplicateEmail, err)
	}
	return &types.StorageError{Op: op, Err: err}
}
