package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken is returned by Login when the token cannot be decoded
	// into an identity. It wraps the decode reason.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrSessionExpired is returned when the backend rejected the bearer
	// token. The session has already been cleared when it is returned.
	ErrSessionExpired = errors.New("session expired")

	// ErrEmptyField is a local validation failure for a required field.
	ErrEmptyField = errors.New("required field is empty")

	// ErrInvalidAmount is a local validation failure for a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidType is a local validation failure for an unknown transaction type.
	ErrInvalidType = errors.New("unknown transaction type")

	// ErrPasswordMismatch is returned by Register when the confirmation
	// differs from the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// FormError is returned by create and update operations. Message is meant to
// be shown next to the form; the form keeps its fields so the user can retry.
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *FormError) Unwrap() error {
	return e.Err
}
