package adapter

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned for an authenticated call made while no
// token is available. Such a call is never sent.
var ErrUnauthenticated = errors.New("no session token, request not sent")

// ErrNetwork wraps failures to reach the backend (DNS, refused connection,
// timeout, cancelled context).
var ErrNetwork = errors.New("backend unreachable")

// ErrRequestNotSent wraps failures to build a request, e.g. a body that
// cannot be encoded. Nothing reached the backend.
var ErrRequestNotSent = errors.New("request could not be built")

// Status errors. Every non-2xx response is reported as an [*APIError] that
// unwraps to one of these.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// APIError is a non-2xx response of the backend.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the "message" field of the JSON error body, empty when the
	// body has none. It is meant for the user.
	Message string

	kind error
}

// NewAPIError builds the error reported for a response with the given status
// and user-facing message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message, kind: statusKind(status)}
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (http %d)", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%v (http %d): %s", e.kind, e.StatusCode, e.Message)
}

// Unwrap returns the status sentinel, so errors.Is(err, ErrNotFound) works.
func (e *APIError) Unwrap() error {
	return e.kind
}
