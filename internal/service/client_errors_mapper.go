// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-fin-track/internal/adapter"
	"github.com/MKhiriev/go-fin-track/internal/app"
)

// UserMessage turns err into the text shown to the user. The backend's own
// message wins; fallback is used when nothing more specific is known.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var formErr *FormError
	if errors.As(err, &formErr) && formErr.Message != "" {
		return formErr.Message
	}

	switch {
	case errors.Is(err, ErrSessionExpired), errors.Is(err, adapter.ErrUnauthenticated):
		return app.MsgSessionExpired
	case errors.Is(err, ErrPasswordMismatch):
		return app.MsgPasswordMismatch
	case errors.Is(err, ErrEmptyField):
		return app.MsgEmptyFields
	case errors.Is(err, ErrInvalidAmount):
		return app.MsgInvalidAmount
	case errors.Is(err, ErrInvalidToken):
		return app.MsgInvalidToken
	}

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if errors.Is(err, adapter.ErrNetwork) {
		return app.MsgNoConnection
	}

	return fallback
}
