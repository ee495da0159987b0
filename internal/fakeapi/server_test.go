package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/utils"
	"github.com/MKhiriev/go-fin-track/models"
)

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestLogin_IssuesDecodableToken(t *testing.T) {
	s := New()
	want := s.SeedUser("Ana", "ana@example.com", "secret")

	w := do(t, s, http.MethodPost, "/auth/login", "", models.Credentials{Email: "ana@example.com", Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	got, err := utils.DecodeIdentity(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := New()
	s.SeedUser("Ana", "ana@example.com", "secret")

	w := do(t, s, http.MethodPost, "/auth/login", "", models.Credentials{Email: "ana@example.com", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Credenciais inválidas."}`, w.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := New()
	reg := models.Registration{Name: "Ana", Email: "ana@example.com", Password: "secret"}

	assert.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/auth/register", "", reg).Code)
	assert.Equal(t, http.StatusConflict, do(t, s, http.MethodPost, "/auth/register", "", reg).Code)
}

func TestTransactions_RequireBearer(t *testing.T) {
	s := New()

	w := do(t, s, http.MethodGet, "/transactions", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTransactions_CRUDAndSummary(t *testing.T) {
	s := New()
	identity := s.SeedUser("Ana", "ana@example.com", "secret")
	token, err := s.IssueToken(identity)
	require.NoError(t, err)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := do(t, s, http.MethodPost, "/transactions", token,
		models.TransactionInput{Description: "Salário", Amount: 1000, Type: models.Income, Date: date})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, identity.ID, created.UserID)

	w = do(t, s, http.MethodPost, "/transactions", token,
		models.TransactionInput{Description: "Almoço", Amount: 25.5, Type: models.Expense, Date: date})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, http.MethodGet, "/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, models.Summary{TotalIncome: 1000, TotalExpense: 25.5, Balance: 974.5}, sum)

	w = do(t, s, http.MethodDelete, "/transactions/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, s.Transactions(identity.ID), 1)

	w = do(t, s, http.MethodDelete, "/transactions/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactions_ScopedToOwner(t *testing.T) {
	s := New()
	ana := s.SeedUser("Ana", "ana@example.com", "secret")
	bob := s.SeedUser("Bob", "bob@example.com", "secret")
	tx := s.SeedTransaction(ana.ID, models.TransactionInput{Description: "x", Amount: 1, Type: models.Income, Date: time.Now()})

	bobToken, err := s.IssueToken(bob)
	require.NoError(t, err)

	w := do(t, s, http.MethodGet, "/transactions", bobToken, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, s, http.MethodDelete, "/transactions/1", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, s.Transactions(ana.ID), 1)
	assert.Equal(t, tx.ID, s.Transactions(ana.ID)[0].ID)
}

func TestFail_AndRecover(t *testing.T) {
	s := New()
	identity := s.SeedUser("Ana", "ana@example.com", "secret")
	token, _ := s.IssueToken(identity)

	s.Fail(RouteSummary, http.StatusInternalServerError, "boom")
	w := do(t, s, http.MethodGet, "/transactions/summary", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"boom"}`, w.Body.String())

	s.Recover(RouteSummary)
	w = do(t, s, http.MethodGet, "/transactions/summary", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, s.Hits(RouteSummary))
}

func TestHold_BlocksUntilReleased(t *testing.T) {
	s := New()
	identity := s.SeedUser("Ana", "ana@example.com", "secret")
	token, _ := s.IssueToken(identity)

	release := s.Hold(RouteListTransactions)

	done := make(chan int)
	go func() {
		done <- do(t, s, http.MethodGet, "/transactions", token, nil).Code
	}()

	select {
	case <-done:
		t.Fatal("request finished while held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	release()

	select {
	case code := <-done:
		assert.Equal(t, http.StatusOK, code)
	case <-time.After(time.Second):
		t.Fatal("request still blocked after release")
	}
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	var out bytes.Buffer
	s := New(WithLogger(logger.New("fakeapi", &out)))

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set(requestIDHeader, "req-1")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
	assert.Contains(t, out.String(), `"request_id":"req-1"`)
	assert.Contains(t, out.String(), `"status":401`)

	w = do(t, s, http.MethodGet, "/transactions/", "", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}
