package service

import (
	"fmt"

	"github.com/MKhiriev/go-fin-track/internal/adapter"
	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/store"
)

// ClientServices groups the client services. All of them share one session.
type ClientServices struct {
	SessionService     ClientSessionService
	AuthService        ClientAuthService
	TransactionService ClientTransactionService
	RefreshJob         ClientRefreshJob
}

// NewClientServices wires the services around a single session. The HTTP
// adapter reads its bearer token from that session.
func NewClientServices(storages *store.ClientStorages, adapterCfg config.ClientAdapter, logger *logger.Logger) (*ClientServices, error) {
	session := NewClientSessionService(storages.TokenRepository, logger)

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapterCfg, session, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating server adapter: %w", err)
	}

	return newClientServices(session, serverAdapter, logger), nil
}

func newClientServices(session ClientSessionService, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	transactions := NewClientTransactionService(serverAdapter, session, logger)

	return &ClientServices{
		SessionService:     session,
		AuthService:        NewClientAuthService(serverAdapter, session, logger),
		TransactionService: transactions,
		RefreshJob:         NewClientRefreshJob(transactions, session),
	}
}
