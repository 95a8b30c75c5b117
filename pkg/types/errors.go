package types

import "errors"

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Entity and input errors.
var (
	ErrInvalidProfile      = errors.New("invalid user profile")
	ErrInvalidMenuItem     = errors.New("invalid menu item")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidMenuDocument = errors.New("invalid menu document")
)

// SchemaError reports a schema creation or migration failure. It is fatal to
// startup: the store cannot be used until the cause is fixed.
type SchemaError struct {
	Op  string // e.g. "init users schema"
	Err error
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Op + ": " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// StorageError reports a failed read, write or delete on an initialized
// schema. Callers surface it as a retryable failure.
type StorageError struct {
	Op  string // e.g. "save user", "filter menu"
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
