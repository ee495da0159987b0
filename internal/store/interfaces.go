// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TokenRepository durably keeps the single bearer token of the local user so
// that a session survives restarts of the client.
//
// Only the session service writes through this interface.
type TokenRepository interface {
	// GetToken returns the persisted token or ErrTokenNotFound.
	GetToken(ctx context.Context) (string, error)

	// SaveToken replaces the persisted token.
	SaveToken(ctx context.Context, token string) error

	// DeleteToken removes the persisted token. Deleting a missing token is
	// not an error.
	DeleteToken(ctx context.Context) error
}
