// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the client:
// typed context keys, token payload decoding, the resty client wrapper,
// request id generation and JSON response writing.
package utils

import (
	"context"

	"github.com/MKhiriev/go-fin-track/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// RequestIDCtxKey carries the X-Request-ID of an outbound call so that
	// every log line of one user action can be correlated.
	RequestIDCtxKey = contextKey("requestID")

	// IdentityCtxKey carries the identity authenticated by a bearer token.
	IdentityCtxKey = contextKey("identity")
)

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext returns the request id stored in ctx, if any.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDCtxKey).(string)
	return requestID, ok && requestID != ""
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the identity stored by WithIdentity.
//
//   - ok == true : value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}
