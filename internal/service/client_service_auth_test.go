// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-track/internal/adapter"
	"github.com/MKhiriev/go-fin-track/internal/app"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/mock"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/models"
)

func newTestAuthSvc(t *testing.T) (service.ClientAuthService, *mock.MockServerAdapter, *mock.MockClientSessionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSession := mock.NewMockClientSessionService(ctrl)
	return service.NewClientAuthService(mockAdapter, mockSession, logger.Nop()), mockAdapter, mockSession
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientAuthService_Login_Success(t *testing.T) {
	svc, mockAdapter, mockSession := newTestAuthSvc(t)
	ctx := context.Background()
	creds := models.Credentials{Email: "ana@example.com", Password: "secret"}

	mockAdapter.EXPECT().Login(ctx, creds).Return("tok", nil)
	mockSession.EXPECT().Login(ctx, "tok").Return(testIdentity, nil)

	identity, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, identity)
}

func TestClientAuthService_Login_TrimsEmail(t *testing.T) {
	svc, mockAdapter, mockSession := newTestAuthSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Login(ctx, models.Credentials{Email: "ana@example.com", Password: "secret"}).
		Return("tok", nil)
	mockSession.EXPECT().Login(ctx, "tok").Return(testIdentity, nil)

	_, err := svc.Login(ctx, models.Credentials{Email: "  ana@example.com ", Password: "secret"})
	require.NoError(t, err)
}

func TestClientAuthService_Login_EmptyFields(t *testing.T) {
	tests := []struct {
		name  string
		creds models.Credentials
	}{
		{name: "empty email", creds: models.Credentials{Password: "secret"}},
		{name: "blank email", creds: models.Credentials{Email: "   ", Password: "secret"}},
		{name: "empty password", creds: models.Credentials{Email: "ana@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// адаптер не вызывается вовсе
			svc, _, _ := newTestAuthSvc(t)

			_, err := svc.Login(context.Background(), tt.creds)
			assert.ErrorIs(t, err, service.ErrEmptyField)
		})
	}
}

func TestClientAuthService_Login_Rejected(t *testing.T) {
	svc, mockAdapter, _ := newTestAuthSvc(t)
	ctx := context.Background()
	creds := models.Credentials{Email: "ana@example.com", Password: "wrong"}

	apiErr := adapter.NewAPIError(http.StatusUnauthorized, "Credenciais inválidas.")
	mockAdapter.EXPECT().Login(ctx, creds).Return("", apiErr)

	_, err := svc.Login(ctx, creds)
	require.Error(t, err)
	assert.Equal(t, "Credenciais inválidas.", service.UserMessage(err, app.MsgAuthFailed))
}

func TestClientAuthService_Login_InvalidTokenFromServer(t *testing.T) {
	svc, mockAdapter, mockSession := newTestAuthSvc(t)
	ctx := context.Background()
	creds := models.Credentials{Email: "ana@example.com", Password: "secret"}

	mockAdapter.EXPECT().Login(ctx, creds).Return("garbage", nil)
	mockSession.EXPECT().Login(ctx, "garbage").Return(models.Identity{}, fmt.Errorf("%w: bad", service.ErrInvalidToken))

	_, err := svc.Login(ctx, creds)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestClientAuthService_Register_Success(t *testing.T) {
	svc, mockAdapter, _ := newTestAuthSvc(t)
	ctx := context.Background()
	reg := models.Registration{Name: "Ana", Email: "ana@example.com", Password: "secret"}

	mockAdapter.EXPECT().Register(ctx, reg).Return(nil)

	require.NoError(t, svc.Register(ctx, reg, "secret"))
}

func TestClientAuthService_Register_PasswordMismatch(t *testing.T) {
	svc, _, _ := newTestAuthSvc(t)

	err := svc.Register(context.Background(),
		models.Registration{Name: "Ana", Email: "ana@example.com", Password: "secret"}, "secreT")
	assert.ErrorIs(t, err, service.ErrPasswordMismatch)
	assert.Equal(t, app.MsgPasswordMismatch, service.UserMessage(err, app.MsgAuthFailed))
}

func TestClientAuthService_Register_EmptyFields(t *testing.T) {
	tests := []struct {
		name string
		reg  models.Registration
	}{
		{name: "no name", reg: models.Registration{Email: "ana@example.com", Password: "secret"}},
		{name: "no email", reg: models.Registration{Name: "Ana", Password: "secret"}},
		{name: "no password", reg: models.Registration{Name: "Ana", Email: "ana@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthSvc(t)

			err := svc.Register(context.Background(), tt.reg, tt.reg.Password)
			assert.ErrorIs(t, err, service.ErrEmptyField)
		})
	}
}

func TestClientAuthService_Register_Conflict(t *testing.T) {
	svc, mockAdapter, _ := newTestAuthSvc(t)
	ctx := context.Background()
	reg := models.Registration{Name: "Ana", Email: "ana@example.com", Password: "secret"}

	mockAdapter.EXPECT().Register(ctx, reg).
		Return(adapter.NewAPIError(http.StatusConflict, "Este e-mail já está em uso."))

	err := svc.Register(ctx, reg, "secret")
	require.Error(t, err)
	assert.Equal(t, "Este e-mail já está em uso.", service.UserMessage(err, app.MsgAuthFailed))
}

func TestClientAuthService_Register_NetworkError(t *testing.T) {
	svc, mockAdapter, _ := newTestAuthSvc(t)
	ctx := context.Background()
	reg := models.Registration{Name: "Ana", Email: "ana@example.com", Password: "secret"}

	mockAdapter.EXPECT().Register(ctx, reg).Return(fmt.Errorf("%w: connection refused", adapter.ErrNetwork))

	err := svc.Register(ctx, reg, "secret")
	assert.True(t, errors.Is(err, adapter.ErrNetwork))
	assert.Equal(t, app.MsgNoConnection, service.UserMessage(err, app.MsgAuthFailed))
}
