package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-track/internal/adapter"
	"github.com/MKhiriev/go-fin-track/internal/app"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/models"
)

type clientTransactionService struct {
	adapter adapter.ServerAdapter
	session ClientSessionService
	logger  *logger.Logger

	mu           sync.Mutex
	transactions []models.Transaction
	summary      *models.Summary
	fetching     int
	errMessage   string
	deleting     map[int64]int
	// epoch is bumped by Reset; results of calls started in an older epoch
	// are dropped.
	epoch uint64
}

func NewClientTransactionService(serverAdapter adapter.ServerAdapter, session ClientSessionService, logger *logger.Logger) ClientTransactionService {
	return &clientTransactionService{
		adapter:  serverAdapter,
		session:  session,
		logger:   logger,
		deleting: make(map[int64]int),
	}
}

func (c *clientTransactionService) Refresh(ctx context.Context) error {
	c.mu.Lock()
	epoch := c.epoch
	c.fetching++
	c.mu.Unlock()

	var (
		list    []models.Transaction
		summary models.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = c.adapter.GetSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		list, err = c.adapter.ListTransactions(gctx)
		return err
	})
	err := g.Wait()
	if err != nil {
		err = c.checkSession(ctx, err)
		c.logger.Err(err).Str("func", "clientTransactionService.Refresh").Msg("refresh failed")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		return err
	}
	c.fetching--

	if err != nil {
		c.errMessage = UserMessage(err, app.MsgLoadFailed)
		return err
	}

	c.transactions = list
	c.summary = &summary
	c.errMessage = ""
	return nil
}

func (c *clientTransactionService) Create(ctx context.Context, in models.TransactionInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	created, err := c.adapter.CreateTransaction(ctx, in)
	if err != nil {
		err = c.checkSession(ctx, err)
		c.logger.Err(err).Str("func", "clientTransactionService.Create").Msg("create failed")
		return &FormError{Message: UserMessage(err, app.MsgCreateFailed), Err: err}
	}
	c.logger.Debug().Int64("transaction_id", created.ID).Msg("transaction created")

	_ = c.Refresh(ctx)
	return nil
}

func (c *clientTransactionService) Update(ctx context.Context, id int64, in models.TransactionInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	if _, err := c.adapter.UpdateTransaction(ctx, id, in); err != nil {
		err = c.checkSession(ctx, err)
		c.logger.Err(err).Str("func", "clientTransactionService.Update").Int64("transaction_id", id).Msg("update failed")
		return &FormError{Message: UserMessage(err, app.MsgUpdateFailed), Err: err}
	}
	c.logger.Debug().Int64("transaction_id", id).Msg("transaction updated")

	_ = c.Refresh(ctx)
	return nil
}

func (c *clientTransactionService) Remove(ctx context.Context, id int64) error {
	c.mu.Lock()
	epoch := c.epoch
	c.deleting[id]++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.epoch != epoch {
			return
		}
		if c.deleting[id] <= 1 {
			delete(c.deleting, id)
		} else {
			c.deleting[id]--
		}
	}()

	if err := c.adapter.DeleteTransaction(ctx, id); err != nil {
		err = c.checkSession(ctx, err)
		c.logger.Err(err).Str("func", "clientTransactionService.Remove").Int64("transaction_id", id).Msg("delete failed")

		c.mu.Lock()
		if c.epoch == epoch {
			c.errMessage = UserMessage(err, app.MsgDeleteFailed)
		}
		c.mu.Unlock()
		return err
	}
	c.logger.Debug().Int64("transaction_id", id).Msg("transaction deleted")

	_ = c.Refresh(ctx)
	return nil
}

func (c *clientTransactionService) Snapshot() TransactionsView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := TransactionsView{
		Transactions: slices.Clone(c.transactions),
		Fetching:     c.fetching > 0,
		Err:          c.errMessage,
		Deleting:     make(map[int64]struct{}, len(c.deleting)),
	}
	if c.summary != nil {
		summary := *c.summary
		view.Summary = &summary
	}
	for id := range c.deleting {
		view.Deleting[id] = struct{}{}
	}
	return view
}

func (c *clientTransactionService) IsDeleting(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deleting[id] > 0
}

func (c *clientTransactionService) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.transactions = nil
	c.summary = nil
	c.fetching = 0
	c.errMessage = ""
	c.deleting = make(map[int64]int)
}

// checkSession expires the session when the backend rejected the token.
func (c *clientTransactionService) checkSession(ctx context.Context, err error) error {
	if !errors.Is(err, adapter.ErrUnauthorized) {
		return err
	}
	c.session.Expire(ctx)
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

func validateInput(in models.TransactionInput) error {
	switch {
	case strings.TrimSpace(in.Description) == "" || in.Date.IsZero():
		return &FormError{Message: app.MsgEmptyFields, Err: ErrEmptyField}
	case math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0:
		return &FormError{Message: app.MsgInvalidAmount, Err: ErrInvalidAmount}
	case !in.Type.Valid():
		return &FormError{Message: app.MsgEmptyFields, Err: ErrInvalidType}
	}
	return nil
}
