// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for communicating with the
// finance REST API.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from HTTP. The package ships a resty implementation
// ([NewHTTPServerAdapter]).
//
// Non-2xx responses are mapped by mapHTTPError to an [*APIError] wrapping one
// of the sentinel values in errors.go, so callers can use [errors.Is] for the
// kind of failure (e.g. [ErrUnauthorized] for 401) and [errors.As] to read the
// backend's message.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fin-track/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the finance backend.
// Implementations are responsible for serialisation, authentication header
// management and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// Register creates a new account. The response body is not consumed.
	Register(ctx context.Context, registration models.Registration) error

	// Login exchanges credentials for a bearer token. The token is returned
	// as is; the adapter does not keep it.
	Login(ctx context.Context, credentials models.Credentials) (string, error)

	// ListTransactions returns all transactions of the current user in the
	// order the backend sends them.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	// GetSummary returns the server-computed totals of the current user.
	GetSummary(ctx context.Context) (models.Summary, error)

	// CreateTransaction stores a new transaction and returns it with the
	// backend-assigned fields.
	CreateTransaction(ctx context.Context, in models.TransactionInput) (models.Transaction, error)

	// UpdateTransaction replaces all editable fields of transaction id.
	UpdateTransaction(ctx context.Context, id int64, in models.TransactionInput) (models.Transaction, error)

	// DeleteTransaction removes transaction id.
	DeleteTransaction(ctx context.Context, id int64) error
}

// TokenSource supplies the bearer token attached to authenticated requests.
// It is implemented by the session service, which is the only owner of the
// token.
type TokenSource interface {
	// Token returns the current token and false when there is none.
	Token() (string, bool)
}
