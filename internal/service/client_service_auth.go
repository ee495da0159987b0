package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fin-track/internal/adapter"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
	session ClientSessionService
	logger  *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, session ClientSessionService, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, session: session, logger: logger}
}

func (a *clientAuthService) Login(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	credentials.Email = strings.TrimSpace(credentials.Email)
	if credentials.Email == "" || credentials.Password == "" {
		return models.Identity{}, ErrEmptyField
	}

	token, err := a.adapter.Login(ctx, credentials)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Login").Msg("login rejected")
		return models.Identity{}, fmt.Errorf("login on server: %w", err)
	}

	return a.session.Login(ctx, token)
}

func (a *clientAuthService) Register(ctx context.Context, registration models.Registration, confirmPassword string) error {
	registration.Name = strings.TrimSpace(registration.Name)
	registration.Email = strings.TrimSpace(registration.Email)
	if registration.Name == "" || registration.Email == "" || registration.Password == "" {
		return ErrEmptyField
	}
	if registration.Password != confirmPassword {
		return ErrPasswordMismatch
	}

	if err := a.adapter.Register(ctx, registration); err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Register").Msg("registration rejected")
		return fmt.Errorf("register on server: %w", err)
	}

	a.logger.Info().Msg("account registered")
	return nil
}
