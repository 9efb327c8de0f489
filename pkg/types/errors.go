// Typed errors returned by the store.
package types

import (
	"errors"
	"fmt"
)

// Code classifies a failure so callers can decide how to react without
// inspecting driver errors.
type Code string

// Error codes.
const (
	CodeConnection      Code = "connection"
	CodeConstraint      Code = "constraint"
	CodeNotFound        Code = "not_found"
	CodeInvalidArgument Code = "invalid_argument"
	CodeInternal        Code = "internal"
)

// Sentinel errors. An *Error matches the sentinel for its Code with errors.Is.
var (
	ErrConnection          = errors.New("store connection failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrClosed              = errors.New("repository is closed")
)

// Error carries the failed operation, its classification, the offending
// values (for constraint violations) and the underlying store error.
type Error struct {
	Op     string
	Code   Code
	Values []any
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + string(e.Code)
	if len(e.Values) > 0 {
		msg += fmt.Sprintf(" %v", e.Values)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error that corresponds to e.Code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConnection:
		return e.Code == CodeConnection
	case ErrConstraintViolation:
		return e.Code == CodeConstraint
	case ErrNotFound:
		return e.Code == CodeNotFound
	case ErrInvalidArgument:
		return e.Code == CodeInvalidArgument
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain. Bare sentinels
// map to their code; anything else is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}

	switch {
	case errors.Is(err, ErrConnection):
		return CodeConnection
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraint
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	}
	return CodeInternal
}
