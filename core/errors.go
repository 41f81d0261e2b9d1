package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// RefusedError is returned when an operation is rejected by a product rule and nothing was changed.
type RefusedError struct {
	Notice string
}

func NewRefusedError(notice string) error {
	return &RefusedError{Notice: notice}
}

func (err RefusedError) Error() string {
	return err.Notice
}

func IsRefused(err error) bool {
	_, ok := errors.Cause(err).(*RefusedError)
	return ok
}

// TransportError reports a failed outbound request: either the call never completed (Err is set)
// or the remote answered with a non-2xx status.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (err TransportError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s: %v", err.Endpoint, err.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", err.Endpoint, err.StatusCode)
}

func (err TransportError) Unwrap() error { return err.Err }

func IsTransport(err error) bool {
	_, ok := errors.Cause(err).(*TransportError)
	return ok
}
