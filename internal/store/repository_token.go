package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-track/internal/logger"
)

type tokenRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTokenRepository returns a TokenRepository storing the token in the
// session key/value table.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *tokenRepository) GetToken(ctx context.Context) (string, error) {
	query, args, err := getSessionValueQuery(authTokenKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "tokenRepository.GetToken").Msg("failed to read persisted token")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if token == "" {
		return "", ErrTokenNotFound
	}

	return token, nil
}

func (r *tokenRepository) SaveToken(ctx context.Context, token string) error {
	query, args, err := upsertSessionValueQuery(authTokenKey, token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "tokenRepository.SaveToken").Msg("failed to persist token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *tokenRepository) DeleteToken(ctx context.Context) error {
	query, args, err := deleteSessionValueQuery(authTokenKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "tokenRepository.DeleteToken").Msg("failed to delete persisted token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
