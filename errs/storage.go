package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

// Storage Specific Errors
var (
	ErrStorageIO   = errors.New("storage I/O failure")
	ErrCorruptData = errors.New("corrupt data")
	ErrStorageLock = errors.New("storage lock unavailable")
)

// NewConflictError reports a duplicate key. Conflicts are answered with 400
// like other invalid submissions; the kind stays distinct via ErrConflict.
func NewConflictError(entity, id string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s %w: %w", entity, ErrAlreadyExists, ErrConflict),
		Details:    fmt.Sprintf("a %s with id %q already exists", entity, id),
		Field:      "id",
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageIO,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func NewCorruptDataError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrCorruptData,
		Details:    fmt.Sprintf("%s does not contain a valid catalog document", path),
		Cause:      cause,
	}
}

func NewStorageLockError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageLock,
		Details:    fmt.Sprintf("could not lock %s", path),
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsStorageIOError(err error) bool {
	return errors.Is(err, ErrStorageIO)
}

func IsCorruptDataError(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

func IsStorageLockError(err error) bool {
	return errors.Is(err, ErrStorageLock)
}
