package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/logger"
)

// ClientStorages groups all client-side repositories into a single value
// passed to the service layer, and owns the underlying connection.
type ClientStorages struct {
	// TokenRepository persists the bearer token between runs.
	TokenRepository TokenRepository

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. opens the SQLite file at cfg.DB.DSN, creating it if needed;
//  2. runs pending schema migrations via [DB.Migrate];
//  3. wires the repositories to the connection.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		TokenRepository: NewTokenRepository(db, logger),
		db:              db,
	}, nil
}

// Close closes the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
