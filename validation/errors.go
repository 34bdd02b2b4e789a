// Package validation defines the error taxonomy shared by the recipe
// validators and the membership trackers. Handlers translate these into
// 400/404 JSON responses.
package validation

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrDuplicate     = errors.New("duplicate entry")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotAMember    = errors.New("not a member")
	ErrSelfFollow    = errors.New("self follow")
)

// FieldError scopes a validation failure to the request field it came from.
type FieldError struct {
	Field string
	Msg   string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error { return e.Err }

func NewFieldError(field, msg string, err error) *FieldError {
	return &FieldError{Field: field, Msg: msg, Err: err}
}

// Message returns the client-facing text for err, falling back to a
// generic label when err carries no field scope.
func Message(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Msg
	}
	return err.Error()
}

// Field returns the request field err is scoped to, or "" if none.
func Field(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
