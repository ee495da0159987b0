package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/store"
	"github.com/MKhiriev/go-fin-track/internal/utils"
	"github.com/MKhiriev/go-fin-track/models"
)

type clientSessionService struct {
	tokens store.TokenRepository
	logger *logger.Logger

	mu       sync.RWMutex
	state    SessionState
	token    string
	identity models.Identity
}

// NewClientSessionService creates the session in SessionInitializing. One
// instance is created per process and shared by everything that needs the
// current user.
func NewClientSessionService(tokens store.TokenRepository, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{
		tokens: tokens,
		logger: logger,
		state:  SessionInitializing,
	}
}

func (s *clientSessionService) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInitializing {
		return
	}
	// whatever happens below, the session leaves Initializing
	s.state = SessionAnonymous

	token, err := s.tokens.GetToken(ctx)
	if errors.Is(err, store.ErrTokenNotFound) {
		s.logger.Debug().Str("func", "clientSessionService.Restore").Msg("no persisted session")
		return
	}
	if err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Restore").Msg("failed to read persisted token")
		return
	}

	identity, err := utils.DecodeIdentity(token)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSessionService.Restore").Msg("discarding undecodable persisted token")
		s.deletePersisted(ctx, "clientSessionService.Restore")
		return
	}

	s.setAuthenticated(token, identity)
	s.logger.Info().Int64("user_id", identity.ID).Msg("session restored")
}

func (s *clientSessionService) Login(ctx context.Context, token string) (models.Identity, error) {
	identity, decodeErr := utils.DecodeIdentity(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if decodeErr != nil {
		s.clear()
		s.deletePersisted(ctx, "clientSessionService.Login")
		s.logger.Warn().Err(decodeErr).Str("func", "clientSessionService.Login").Msg("rejected undecodable token")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, decodeErr)
	}

	if err := s.tokens.SaveToken(ctx, token); err != nil {
		// the session still works for this run, it just won't survive a restart
		s.logger.Err(err).Str("func", "clientSessionService.Login").Msg("failed to persist token")
	}

	s.setAuthenticated(token, identity)
	s.logger.Info().Int64("user_id", identity.ID).Msg("logged in")
	return identity, nil
}

func (s *clientSessionService) Logout(ctx context.Context) {
	s.end(ctx, "clientSessionService.Logout")
	s.logger.Info().Msg("logged out")
}

func (s *clientSessionService) Expire(ctx context.Context) {
	s.end(ctx, "clientSessionService.Expire")
	s.logger.Warn().Msg("session expired, token rejected by backend")
}

func (s *clientSessionService) CurrentIdentity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != SessionAuthenticated {
		return models.Identity{}, false
	}
	return s.identity, true
}

// Token implements adapter.TokenSource.
func (s *clientSessionService) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != SessionAuthenticated {
		return "", false
	}
	return s.token, true
}

func (s *clientSessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *clientSessionService) IsLoading() bool {
	return s.State() == SessionInitializing
}

func (s *clientSessionService) end(ctx context.Context, caller string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	s.deletePersisted(ctx, caller)
}

// setAuthenticated and clear are called with s.mu held.
func (s *clientSessionService) setAuthenticated(token string, identity models.Identity) {
	s.state = SessionAuthenticated
	s.token = token
	s.identity = identity
}

func (s *clientSessionService) clear() {
	s.state = SessionAnonymous
	s.token = ""
	s.identity = models.Identity{}
}

func (s *clientSessionService) deletePersisted(ctx context.Context, caller string) {
	if err := s.tokens.DeleteToken(ctx); err != nil {
		s.logger.Err(err).Str("func", caller).Msg("failed to delete persisted token")
	}
}
