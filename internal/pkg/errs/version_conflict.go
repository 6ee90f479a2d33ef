package errs

import (
	"errors"
	"fmt"
)

// ErrVersionConflict is the sentinel error for optimistic concurrency
// failures: the persisted object changed after it was loaded.
var ErrVersionConflict = errors.New("version conflict")

// VersionConflictError indicates that a conditional update matched no rows
// because another writer committed first. ParamName names the object kind,
// ID the identifier, ExpectedVersion the version the writer was holding.
type VersionConflictError struct {
	ParamName       string
	ID              any
	ExpectedVersion int
	Cause           error
}

// NewVersionConflictError creates a VersionConflictError for the named object.
func NewVersionConflictError(paramName string, id any, expectedVersion int) *VersionConflictError {
	return &VersionConflictError{
		ParamName:       paramName,
		ID:              id,
		ExpectedVersion: expectedVersion,
	}
}

// NewVersionConflictErrorWithCause creates a VersionConflictError that wraps
// an underlying cause.
func NewVersionConflictErrorWithCause(paramName string, id any, expectedVersion int, cause error) *VersionConflictError {
	return &VersionConflictError{
		ParamName:       paramName,
		ID:              id,
		ExpectedVersion: expectedVersion,
		Cause:           cause,
	}
}

// Error formats the error message with the object, identifier and the stale version.
func (e *VersionConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s, expected version %d",
		ErrVersionConflict, e.ParamName, e.ID, e.ExpectedVersion)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

// Unwrap returns the sentinel error, enabling errors.Is classification.
func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
