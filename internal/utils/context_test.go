// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-fin-track/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	requestID, ok := GetRequestIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if requestID != "req-1" {
		t.Errorf("expected req-1, got %s", requestID)
	}
}

func TestGetRequestIDFromContext_Missing(t *testing.T) {
	if _, ok := GetRequestIDFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
}

func TestGetRequestIDFromContext_Empty(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")

	if _, ok := GetRequestIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty id, got true")
	}
}

func TestIdentity_RoundTrip(t *testing.T) {
	want := models.Identity{ID: 42, Email: "a@b.c"}
	ctx := WithIdentity(context.Background(), want)

	got, ok := GetIdentityFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "not-an-identity")

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetIdentityFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.Identity{ID: 1})

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
