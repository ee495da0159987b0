package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/utils"
	"github.com/MKhiriev/go-fin-track/models"
)

const requestIDHeader = "X-Request-ID"

type httpServerAdapter struct {
	client *utils.HTTPClient
	tokens TokenSource
	ids    *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of [ServerAdapter]
// bound to adapterCfg.HTTPAddress. Authenticated calls read the bearer token
// from tokens at dispatch time.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (ServerAdapter, error) {
	if tokens == nil {
		return nil, fmt.Errorf("adapter needs a token source")
	}

	client := utils.NewHTTPClient(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout)
	// resty writes its own warnings to stderr, which the TUI owns
	client.SetLogger(restyLogger{logger})

	return &httpServerAdapter{
		client: client,
		tokens: tokens,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

// Register implements [ServerAdapter]. It POSTs the registration to
// /auth/register; the response body is ignored.
func (h *httpServerAdapter) Register(ctx context.Context, registration models.Registration) error {
	_, err := h.send(h.request(ctx).SetBody(registration), http.MethodPost, "/auth/register", "register")
	return err
}

// Login implements [ServerAdapter]. It POSTs the credentials to /auth/login
// and returns the "token" field of the response.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	resp, err := h.send(h.request(ctx).SetBody(credentials), http.MethodPost, "/auth/login", "login")
	if err != nil {
		return "", err
	}

	out, err := decodeBody[models.LoginResponse](resp, "login")
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}

	return out.Token, nil
}

// ListTransactions implements [ServerAdapter] via GET /transactions.
func (h *httpServerAdapter) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.send(req, http.MethodGet, "/transactions", "list transactions")
	if err != nil {
		return nil, err
	}

	list, err := decodeBody[[]models.Transaction](resp, "list transactions")
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Transaction{}
	}
	return list, nil
}

// GetSummary implements [ServerAdapter] via GET /transactions/summary.
func (h *httpServerAdapter) GetSummary(ctx context.Context) (models.Summary, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Summary{}, err
	}

	resp, err := h.send(req, http.MethodGet, "/transactions/summary", "get summary")
	if err != nil {
		return models.Summary{}, err
	}

	return decodeBody[models.Summary](resp, "get summary")
}

// CreateTransaction implements [ServerAdapter] via POST /transactions.
func (h *httpServerAdapter) CreateTransaction(ctx context.Context, in models.TransactionInput) (models.Transaction, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	resp, err := h.send(req.SetBody(in), http.MethodPost, "/transactions", "create transaction")
	if err != nil {
		return models.Transaction{}, err
	}

	return decodeBody[models.Transaction](resp, "create transaction")
}

// UpdateTransaction implements [ServerAdapter] via PUT /transactions/{id}.
func (h *httpServerAdapter) UpdateTransaction(ctx context.Context, id int64, in models.TransactionInput) (models.Transaction, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	req.SetBody(in).SetPathParam("id", strconv.FormatInt(id, 10))
	resp, err := h.send(req, http.MethodPut, "/transactions/{id}", "update transaction")
	if err != nil {
		return models.Transaction{}, err
	}

	return decodeBody[models.Transaction](resp, "update transaction")
}

// DeleteTransaction implements [ServerAdapter] via DELETE /transactions/{id}.
// The response body is ignored.
func (h *httpServerAdapter) DeleteTransaction(ctx context.Context, id int64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	req.SetPathParam("id", strconv.FormatInt(id, 10))
	_, err = h.send(req, http.MethodDelete, "/transactions/{id}", "delete transaction")
	return err
}

// request builds an unauthenticated request carrying a request id taken from
// ctx or freshly generated.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(requestIDHeader, requestID)
}

// authedRequest builds a request with the bearer token attached or fails
// with ErrUnauthenticated when the session has no token.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, ok := h.tokens.Token()
	if !ok || token == "" {
		return nil, ErrUnauthenticated
	}

	return h.request(ctx).SetAuthToken(token), nil
}

func (h *httpServerAdapter) send(req *resty.Request, method, path, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpServerAdapter.send").
			Str("operation", op).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Msg("request failed")
		return nil, fmt.Errorf("%s request: %w: %w", op, transportKind(err), err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Warn().
			Str("func", "httpServerAdapter.send").
			Str("operation", op).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Int("status", resp.StatusCode()).
			Msg("backend rejected request")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	h.logger.Debug().
		Str("operation", op).
		Str("request_id", req.Header.Get(requestIDHeader)).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("request done")
	return resp, nil
}

// transportKind tells a failed exchange with the backend from a request that
// never left the client.
func transportKind(err error) error {
	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.As(err, &urlErr), errors.As(err, &netErr),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrNetwork
	default:
		return ErrRequestNotSent
	}
}

// restyLogger routes resty's internal messages to the application log.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any)  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug().Msgf(format, v...) }

func decodeBody[T any](resp *resty.Response, op string) (T, error) {
	var out T
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("%s decode response: %w", op, err)
	}
	return out, nil
}
