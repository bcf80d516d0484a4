package apierr

import (
	"fmt"
	"net/http"
)

// Caller-error codes used across the HTTP surface. Model-side failures never
// produce one of these; they resolve to fallback payloads upstream.
const (
	CodeInvalidJSON    = "invalid_json"
	CodeInvalidProfile = "invalid_profile"
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal_error"
)

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

// BadRequest marks a caller error: malformed body, invalid profile, unknown
// reroll section.
func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// Internal marks a server-side failure surfaced to the caller.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}
