// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the user derived from the payload of a bearer token.
// It is never sent to the server.
type Identity struct {
	// ID is the backend user identifier ("id" claim).
	ID int64 `json:"id"`

	// Email is the user's login ("email" claim).
	Email string `json:"email"`
}

// Credentials is the request body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the request body of POST /auth/register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
