package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed API error carried from services up to the handler
// boundary, where Status and Code are mapped onto the HTTP response.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation covers missing or malformed client input.
func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// Unauthorized covers missing or rejected credentials.
func Unauthorized(code string, err error) *Error {
	return New(http.StatusUnauthorized, code, err)
}

// Forbidden covers callers who are authenticated but lack the role or
// enrollment the operation requires.
func Forbidden(code string, err error) *Error {
	return New(http.StatusForbidden, code, err)
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Upstream covers failures from external collaborators: the model
// provider, the database, or the storage service.
func Upstream(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// From extracts a typed *Error from err, or wraps err as a generic 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Upstream("internal_error", err)
}
