// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-track/internal/adapter"
	"github.com/MKhiriev/go-fin-track/internal/app"
	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/fakeapi"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/mock"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/models"
)

var testDate = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

func lunchInput() models.TransactionInput {
	return models.TransactionInput{Description: "Lunch", Amount: 25.5, Type: models.Expense, Date: testDate}
}

// ── helpers: mocks ───────────────────────────────────────────────────────────

func newTestTxSvc(t *testing.T) (service.ClientTransactionService, *mock.MockServerAdapter, *mock.MockClientSessionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSession := mock.NewMockClientSessionService(ctrl)
	return service.NewClientTransactionService(mockAdapter, mockSession, logger.Nop()), mockAdapter, mockSession
}

// ── helpers: fake backend ────────────────────────────────────────────────────

type txBackend struct {
	api      *fakeapi.Server
	identity models.Identity
	session  service.ClientSessionService
	svc      service.ClientTransactionService
}

// newTxBackend: сервис транзакций поверх настоящего HTTP адаптера и fakeapi,
// с уже залогиненной сессией
func newTxBackend(t *testing.T) *txBackend {
	t.Helper()

	api := fakeapi.New()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	identity := api.SeedUser("Ana", "ana@example.com", "secret")
	token, err := api.IssueToken(identity)
	require.NoError(t, err)

	repo := mock.NewMockTokenRepository(gomock.NewController(t))
	repo.EXPECT().SaveToken(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	repo.EXPECT().DeleteToken(gomock.Any()).Return(nil).AnyTimes()

	session := service.NewClientSessionService(repo, logger.Nop())
	_, err = session.Login(context.Background(), token)
	require.NoError(t, err)

	serverAdapter, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 5 * time.Second,
	}, session, logger.Nop())
	require.NoError(t, err)

	return &txBackend{
		api:      api,
		identity: identity,
		session:  session,
		svc:      service.NewClientTransactionService(serverAdapter, session, logger.Nop()),
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("operation did not finish")
		return nil
	}
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestClientTransactionService_InitialView(t *testing.T) {
	svc, _, _ := newTestTxSvc(t)

	view := svc.Snapshot()
	assert.Empty(t, view.Transactions)
	assert.Nil(t, view.Summary)
	assert.False(t, view.Fetching)
	assert.Empty(t, view.Err)
	assert.Empty(t, view.Deleting)
}

func TestClientTransactionService_Refresh_Success(t *testing.T) {
	svc, mockAdapter, _ := newTestTxSvc(t)
	ctx := context.Background()

	list := []models.Transaction{
		{ID: 2, Description: "Salary", Amount: 3000, Type: models.Income, Date: testDate},
		{ID: 1, Description: "Lunch", Amount: 25.5, Type: models.Expense, Date: testDate},
	}
	summary := models.Summary{TotalIncome: 3000, TotalExpense: 25.5, Balance: 2974.5}

	mockAdapter.EXPECT().ListTransactions(gomock.Any()).Return(list, nil)
	mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(summary, nil)

	require.NoError(t, svc.Refresh(ctx))

	view := svc.Snapshot()
	assert.Equal(t, list, view.Transactions)
	require.NotNil(t, view.Summary)
	assert.Equal(t, summary, *view.Summary)
	assert.False(t, view.Fetching)
	assert.Empty(t, view.Err)
}

func TestClientTransactionService_Refresh_PartialFailureKeepsPreviousView(t *testing.T) {
	svc, mockAdapter, _ := newTestTxSvc(t)
	ctx := context.Background()

	oldList := []models.Transaction{{ID: 1, Description: "Lunch", Amount: 25.5, Type: models.Expense, Date: testDate}}
	oldSummary := models.Summary{TotalExpense: 25.5, Balance: -25.5}

	gomock.InOrder(
		mockAdapter.EXPECT().ListTransactions(gomock.Any()).Return(oldList, nil),
		mockAdapter.EXPECT().ListTransactions(gomock.Any()).
			Return(nil, adapter.NewAPIError(http.StatusInternalServerError, "Erro interno.")),
	)
	gomock.InOrder(
		mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(oldSummary, nil),
		// сводка успешна, но список упал: ничего не публикуется
		mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(models.Summary{TotalIncome: 999}, nil).MaxTimes(1),
	)

	require.NoError(t, svc.Refresh(ctx))
	require.Error(t, svc.Refresh(ctx))

	view := svc.Snapshot()
	assert.Equal(t, oldList, view.Transactions)
	require.NotNil(t, view.Summary)
	assert.Equal(t, oldSummary, *view.Summary)
	assert.Equal(t, "Erro interno.", view.Err)
	assert.False(t, view.Fetching)
}

func TestClientTransactionService_Refresh_FallbackMessage(t *testing.T) {
	svc, mockAdapter, _ := newTestTxSvc(t)

	mockAdapter.EXPECT().ListTransactions(gomock.Any()).Return([]models.Transaction{}, nil).MaxTimes(1)
	mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(models.Summary{}, errors.New("decode failed"))

	require.Error(t, svc.Refresh(context.Background()))
	assert.Equal(t, app.MsgLoadFailed, svc.Snapshot().Err)
}

func TestClientTransactionService_Refresh_SuccessClearsError(t *testing.T) {
	svc, mockAdapter, _ := newTestTxSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(models.Summary{}, errors.New("boom")),
		mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(models.Summary{}, nil),
	)
	mockAdapter.EXPECT().ListTransactions(gomock.Any()).Return([]models.Transaction{}, nil).MinTimes(1).MaxTimes(2)

	require.Error(t, svc.Refresh(ctx))
	require.NotEmpty(t, svc.Snapshot().Err)

	require.NoError(t, svc.Refresh(ctx))
	assert.Empty(t, svc.Snapshot().Err)
}

func TestClientTransactionService_Refresh_UnauthorizedExpiresSession(t *testing.T) {
	svc, mockAdapter, mockSession := newTestTxSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().GetSummary(gomock.Any()).Return(models.Summary{}, adapter.NewAPIError(http.StatusUnauthorized, "Token inválido."))
	mockAdapter.EXPECT().ListTransactions(gomock.Any()).Return(nil, adapter.NewAPIError(http.StatusUnauthorized, "Token inválido.")).MaxTimes(1)
	mockSession.EXPECT().Expire(ctx)

	err := svc.Refresh(ctx)
	assert.ErrorIs(t, err, service.ErrSessionExpired)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Equal(t, app.MsgSessionExpired, svc.Snapshot().Err)
}

func TestClientTransactionService_Refresh_FetchingWhileInFlight(t *testing.T) {
	b := newTxBackend(t)

	release := b.api.Hold(fakeapi.RouteSummary)
	t.Cleanup(release)

	done := make(chan error, 1)
	go func() { done <- b.svc.Refresh(context.Background()) }()

	require.Eventually(t, func() bool { return b.svc.Snapshot().Fetching }, 2*time.Second, 10*time.Millisecond)

	release()
	require.NoError(t, waitDone(t, done))
	assert.False(t, b.svc.Snapshot().Fetching)
}

func TestClientTransactionService_Refresh_OverlappingKeepsFetching(t *testing.T) {
	b := newTxBackend(t)

	release := b.api.Hold(fakeapi.RouteSummary)
	t.Cleanup(release)

	first := make(chan error, 1)
	second := make(chan error, 1)
	go func() { first <- b.svc.Refresh(context.Background()) }()
	go func() { second <- b.svc.Refresh(context.Background()) }()

	require.Eventually(t, func() bool { return b.api.Hits(fakeapi.RouteSummary) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, b.svc.Snapshot().Fetching)

	release()
	require.NoError(t, waitDone(t, first))
	require.NoError(t, waitDone(t, second))
	assert.False(t, b.svc.Snapshot().Fetching)
}

// ── Create / Update ──────────────────────────────────────────────────────────

func TestClientTransactionService_Create_RefreshesView(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	require.NoError(t, b.svc.Refresh(ctx))
	require.Empty(t, b.svc.Snapshot().Transactions)

	require.NoError(t, b.svc.Create(ctx, lunchInput()))

	view := b.svc.Snapshot()
	require.Len(t, view.Transactions, 1)
	assert.Equal(t, "Lunch", view.Transactions[0].Description)
	assert.Equal(t, 25.5, view.Transactions[0].Amount)
	assert.Equal(t, models.Expense, view.Transactions[0].Type)
	assert.True(t, testDate.Equal(view.Transactions[0].Date))

	require.NotNil(t, view.Summary)
	assert.Equal(t, 25.5, view.Summary.TotalExpense)
	assert.Equal(t, -25.5, view.Summary.Balance)
}

func TestClientTransactionService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      models.TransactionInput
		wantMsg string
		wantErr error
	}{
		{
			name:    "empty description",
			in:      models.TransactionInput{Description: "  ", Amount: 10, Type: models.Income, Date: testDate},
			wantMsg: app.MsgEmptyFields,
			wantErr: service.ErrEmptyField,
		},
		{
			name:    "no date",
			in:      models.TransactionInput{Description: "Salary", Amount: 10, Type: models.Income},
			wantMsg: app.MsgEmptyFields,
			wantErr: service.ErrEmptyField,
		},
		{
			name:    "zero amount",
			in:      models.TransactionInput{Description: "Salary", Type: models.Income, Date: testDate},
			wantMsg: app.MsgInvalidAmount,
			wantErr: service.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			in:      models.TransactionInput{Description: "Salary", Amount: -1, Type: models.Income, Date: testDate},
			wantMsg: app.MsgInvalidAmount,
			wantErr: service.ErrInvalidAmount,
		},
		{
			name:    "NaN amount",
			in:      models.TransactionInput{Description: "Salary", Amount: math.NaN(), Type: models.Income, Date: testDate},
			wantMsg: app.MsgInvalidAmount,
			wantErr: service.ErrInvalidAmount,
		},
		{
			name:    "infinite amount",
			in:      models.TransactionInput{Description: "Salary", Amount: math.Inf(1), Type: models.Income, Date: testDate},
			wantMsg: app.MsgInvalidAmount,
			wantErr: service.ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			in:      models.TransactionInput{Description: "Salary", Amount: 10, Type: "transfer", Date: testDate},
			wantMsg: app.MsgEmptyFields,
			wantErr: service.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// адаптер не должен вызываться
			svc, _, _ := newTestTxSvc(t)

			err := svc.Create(context.Background(), tt.in)

			var formErr *service.FormError
			require.ErrorAs(t, err, &formErr)
			assert.Equal(t, tt.wantMsg, formErr.Message)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientTransactionService_Create_BackendRejects(t *testing.T) {
	svc, mockAdapter, _ := newTestTxSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateTransaction(ctx, lunchInput()).
		Return(models.Transaction{}, adapter.NewAPIError(http.StatusBadRequest, "Dados inválidos."))

	err := svc.Create(ctx, lunchInput())

	var formErr *service.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Dados inválidos.", formErr.Message)
	assert.ErrorIs(t, err, adapter.ErrBadRequest)
	assert.Empty(t, svc.Snapshot().Transactions)
}

func TestClientTransactionService_Create_FallbackMessage(t *testing.T) {
	svc, mockAdapter, _ := newTestTxSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateTransaction(ctx, lunchInput()).
		Return(models.Transaction{}, adapter.NewAPIError(http.StatusInternalServerError, ""))

	err := svc.Create(ctx, lunchInput())

	var formErr *service.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, app.MsgCreateFailed, formErr.Message)
}

func TestClientTransactionService_Create_RefreshFailureIsNotCreateFailure(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	b.api.Fail(fakeapi.RouteListTransactions, http.StatusInternalServerError, "")

	require.NoError(t, b.svc.Create(ctx, lunchInput()))

	// запись создана на сервере, но локальный вид не обновился
	assert.Len(t, b.api.Transactions(b.identity.ID), 1)
	view := b.svc.Snapshot()
	assert.Empty(t, view.Transactions)
	assert.Equal(t, app.MsgLoadFailed, view.Err)
}

func TestClientTransactionService_Update(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	tx := b.api.SeedTransaction(b.identity.ID, lunchInput())

	in := tx.Input()
	in.Description = "Dinner"
	in.Amount = 40
	require.NoError(t, b.svc.Update(ctx, tx.ID, in))

	view := b.svc.Snapshot()
	require.Len(t, view.Transactions, 1)
	assert.Equal(t, tx.ID, view.Transactions[0].ID)
	assert.Equal(t, "Dinner", view.Transactions[0].Description)
	assert.Equal(t, 40.0, view.Summary.TotalExpense)
}

func TestClientTransactionService_Update_NotFound(t *testing.T) {
	b := newTxBackend(t)

	err := b.svc.Update(context.Background(), 42, lunchInput())

	var formErr *service.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Transação não encontrada.", formErr.Message)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestClientTransactionService_Update_UnauthorizedExpiresSession(t *testing.T) {
	svc, mockAdapter, mockSession := newTestTxSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().UpdateTransaction(ctx, int64(3), lunchInput()).
		Return(models.Transaction{}, adapter.NewAPIError(http.StatusUnauthorized, ""))
	mockSession.EXPECT().Expire(ctx)

	err := svc.Update(ctx, 3, lunchInput())

	var formErr *service.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, app.MsgSessionExpired, formErr.Message)
	assert.ErrorIs(t, err, service.ErrSessionExpired)
}

// ── Remove ───────────────────────────────────────────────────────────────────

func TestClientTransactionService_Remove(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	keep := b.api.SeedTransaction(b.identity.ID, lunchInput())
	gone := b.api.SeedTransaction(b.identity.ID, models.TransactionInput{
		Description: "Salary", Amount: 3000, Type: models.Income, Date: testDate,
	})
	require.NoError(t, b.svc.Refresh(ctx))
	require.Len(t, b.svc.Snapshot().Transactions, 2)

	require.NoError(t, b.svc.Remove(ctx, gone.ID))

	view := b.svc.Snapshot()
	require.Len(t, view.Transactions, 1)
	assert.Equal(t, keep.ID, view.Transactions[0].ID)
	assert.Zero(t, view.Summary.TotalIncome)
	assert.False(t, b.svc.IsDeleting(gone.ID))
}

func TestClientTransactionService_Remove_NotFound(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	b.api.SeedTransaction(b.identity.ID, lunchInput())
	require.NoError(t, b.svc.Refresh(ctx))
	before := b.svc.Snapshot().Transactions

	err := b.svc.Remove(ctx, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrNotFound)

	view := b.svc.Snapshot()
	assert.Equal(t, "Transação não encontrada.", view.Err)
	assert.Equal(t, before, view.Transactions)
	assert.False(t, view.IsDeleting(42))
}

func TestClientTransactionService_Remove_MarksDeletingWhileInFlight(t *testing.T) {
	b := newTxBackend(t)

	first := b.api.SeedTransaction(b.identity.ID, lunchInput())
	second := b.api.SeedTransaction(b.identity.ID, lunchInput())

	// у каждого удаления свой шлагбаум, отпускаем их по очереди
	releaseFirst := b.api.Hold(fakeapi.RouteDeleteTransaction)
	t.Cleanup(releaseFirst)

	done1 := make(chan error, 1)
	go func() { done1 <- b.svc.Remove(context.Background(), first.ID) }()
	require.Eventually(t, func() bool {
		return b.api.Hits(fakeapi.RouteDeleteTransaction) == 1
	}, 2*time.Second, 10*time.Millisecond)

	releaseSecond := b.api.Hold(fakeapi.RouteDeleteTransaction)
	t.Cleanup(releaseSecond)

	done2 := make(chan error, 1)
	go func() { done2 <- b.svc.Remove(context.Background(), second.ID) }()
	require.Eventually(t, func() bool {
		return b.api.Hits(fakeapi.RouteDeleteTransaction) == 2
	}, 2*time.Second, 10*time.Millisecond)

	view := b.svc.Snapshot()
	assert.True(t, view.IsDeleting(first.ID))
	assert.True(t, view.IsDeleting(second.ID))

	releaseFirst()
	require.NoError(t, waitDone(t, done1))

	// первое удаление закончилось, второе всё ещё помечено
	view = b.svc.Snapshot()
	assert.False(t, view.IsDeleting(first.ID))
	assert.True(t, view.IsDeleting(second.ID))
	assert.True(t, b.svc.IsDeleting(second.ID))
	require.Len(t, view.Transactions, 1)
	assert.Equal(t, second.ID, view.Transactions[0].ID)

	releaseSecond()
	require.NoError(t, waitDone(t, done2))

	assert.False(t, b.svc.IsDeleting(second.ID))
	assert.Empty(t, b.svc.Snapshot().Transactions)
}

func TestClientTransactionService_Remove_UnauthorizedExpiresSession(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	tx := b.api.SeedTransaction(b.identity.ID, lunchInput())
	b.api.Fail(fakeapi.RouteDeleteTransaction, http.StatusUnauthorized, "Token inválido.")

	err := b.svc.Remove(ctx, tx.ID)
	assert.ErrorIs(t, err, service.ErrSessionExpired)
	assert.Equal(t, service.SessionAnonymous, b.session.State())
	assert.Equal(t, app.MsgSessionExpired, b.svc.Snapshot().Err)

	// после истечения сессии запросы не отправляются
	hits := b.api.Hits(fakeapi.RouteListTransactions)
	err = b.svc.Refresh(ctx)
	assert.ErrorIs(t, err, adapter.ErrUnauthenticated)
	assert.Equal(t, hits, b.api.Hits(fakeapi.RouteListTransactions))
	assert.Equal(t, app.MsgSessionExpired, b.svc.Snapshot().Err)
}

// ── Reset ────────────────────────────────────────────────────────────────────

func TestClientTransactionService_Reset(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	b.api.SeedTransaction(b.identity.ID, lunchInput())
	require.NoError(t, b.svc.Refresh(ctx))
	require.NotEmpty(t, b.svc.Snapshot().Transactions)

	b.svc.Reset()

	view := b.svc.Snapshot()
	assert.Empty(t, view.Transactions)
	assert.Nil(t, view.Summary)
	assert.Empty(t, view.Err)
}

func TestClientTransactionService_Reset_DropsLateResults(t *testing.T) {
	b := newTxBackend(t)

	b.api.SeedTransaction(b.identity.ID, lunchInput())
	release := b.api.Hold(fakeapi.RouteListTransactions)
	t.Cleanup(release)

	done := make(chan error, 1)
	go func() { done <- b.svc.Refresh(context.Background()) }()

	require.Eventually(t, func() bool {
		return b.api.Hits(fakeapi.RouteListTransactions) == 1
	}, 2*time.Second, 10*time.Millisecond)

	b.svc.Reset()
	assert.False(t, b.svc.Snapshot().Fetching)

	release()
	require.NoError(t, waitDone(t, done))

	// ответ пришёл после Reset и должен быть отброшен
	view := b.svc.Snapshot()
	assert.Empty(t, view.Transactions)
	assert.Nil(t, view.Summary)
	assert.False(t, view.Fetching)
}

func TestClientTransactionService_SnapshotIsACopy(t *testing.T) {
	b := newTxBackend(t)
	ctx := context.Background()

	b.api.SeedTransaction(b.identity.ID, lunchInput())
	require.NoError(t, b.svc.Refresh(ctx))

	view := b.svc.Snapshot()
	view.Transactions[0].Description = "changed"
	view.Summary.Balance = 1

	fresh := b.svc.Snapshot()
	assert.Equal(t, "Lunch", fresh.Transactions[0].Description)
	assert.Equal(t, -25.5, fresh.Summary.Balance)
}
