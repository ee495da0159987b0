// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-track/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SessionState is the position of the session in its lifecycle.
type SessionState int

const (
	// SessionInitializing lasts from process start until Restore returns.
	// Access decisions must wait while the session is in this state.
	SessionInitializing SessionState = iota

	// SessionAuthenticated means a decodable token and its identity are held.
	SessionAuthenticated

	// SessionAnonymous means no token is held.
	SessionAnonymous
)

func (s SessionState) String() string {
	switch s {
	case SessionInitializing:
		return "initializing"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// ClientSessionService owns the bearer token and the identity decoded from
// it. It is the only writer of the persisted token. The identity is present
// if and only if the token is present.
type ClientSessionService interface {
	// Restore loads the persisted token once at startup. An undecodable token
	// is deleted. The session always leaves SessionInitializing, and Restore
	// never fails: storage errors are logged and leave the session anonymous.
	Restore(ctx context.Context)

	// Login decodes token and, on success, persists it and makes the session
	// authenticated. On decode failure it returns ErrInvalidToken, removes any
	// persisted token and leaves the session anonymous.
	Login(ctx context.Context, token string) (models.Identity, error)

	// Logout clears the token from memory and storage. It is idempotent and
	// cannot fail; storage errors are logged.
	Logout(ctx context.Context)

	// Expire ends a session whose token the backend no longer accepts.
	Expire(ctx context.Context)

	// CurrentIdentity returns the identity and true when authenticated.
	CurrentIdentity() (models.Identity, bool)

	// Token returns the bearer token and true when authenticated.
	Token() (string, bool)

	// State returns the current lifecycle state.
	State() SessionState

	// IsLoading reports whether Restore has not finished yet.
	IsLoading() bool
}

// ClientAuthService runs the login and registration flows against the
// backend.
type ClientAuthService interface {
	// Login exchanges credentials for a token and hands it to the session.
	Login(ctx context.Context, credentials models.Credentials) (models.Identity, error)

	// Register validates the form locally, then creates the account. It does
	// not log in.
	Register(ctx context.Context, registration models.Registration, confirmPassword string) error
}

// TransactionsView is an immutable copy of the controller's state for
// renderers.
type TransactionsView struct {
	// Transactions is the last successfully fetched list, in backend order.
	Transactions []models.Transaction

	// Summary is nil until the first successful refresh.
	Summary *models.Summary

	// Fetching is true while at least one refresh is in flight.
	Fetching bool

	// Err is the message of the last failed refresh or delete, empty after a
	// successful refresh.
	Err string

	// Deleting holds the ids with a delete in flight.
	Deleting map[int64]struct{}
}

// IsDeleting reports whether a delete of id is in flight.
func (v TransactionsView) IsDeleting(id int64) bool {
	_, ok := v.Deleting[id]
	return ok
}

// ClientTransactionService keeps the local view of the user's transactions
// and summary in sync with the backend. The view is only ever replaced by a
// refresh; mutations never patch it.
type ClientTransactionService interface {
	// Refresh fetches the summary and the list concurrently and publishes
	// both together after both succeed. On failure the previous view is kept
	// and the error message is set.
	Refresh(ctx context.Context) error

	// Create submits a new transaction and then refreshes. Failures are
	// reported as *FormError.
	Create(ctx context.Context, in models.TransactionInput) error

	// Update replaces the editable fields of transaction id and then
	// refreshes. Failures are reported as *FormError.
	Update(ctx context.Context, id int64, in models.TransactionInput) error

	// Remove deletes transaction id and then refreshes. The id is marked as
	// deleting until the call returns. Confirmation is the caller's job.
	Remove(ctx context.Context, id int64) error

	// Snapshot returns a copy of the current view.
	Snapshot() TransactionsView

	// IsDeleting reports whether a delete of id is in flight.
	IsDeleting(id int64) bool

	// Reset drops the cached view, so the next user starts empty. Results of
	// requests started before Reset are discarded.
	Reset()
}

// ClientRefreshJob periodically refreshes the dashboard while a user is
// logged in.
type ClientRefreshJob interface {
	// Start launches the background goroutine refreshing every interval and
	// reporting each outcome to onDone (which may be nil). A non-positive
	// interval disables the job. A running job is stopped first.
	Start(ctx context.Context, interval time.Duration, onDone func(error))

	// Stop signals the goroutine to exit and blocks until it has.
	Stop()
}
