package fakeapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/utils"
	"github.com/MKhiriev/go-fin-track/models"
)

// Route keys accepted by Fail, Hold and Hits.
const (
	RouteRegister          = "POST /auth/register"
	RouteLogin             = "POST /auth/login"
	RouteListTransactions  = "GET /transactions"
	RouteSummary           = "GET /transactions/summary"
	RouteCreateTransaction = "POST /transactions"
	RouteUpdateTransaction = "PUT /transactions/{id}"
	RouteDeleteTransaction = "DELETE /transactions/{id}"
)

type user struct {
	identity models.Identity
	name     string
	password string
}

type fault struct {
	status  int
	message string
}

// Server is the fake backend. The zero value is not usable; call New.
type Server struct {
	mu sync.Mutex

	users        map[string]user
	transactions map[int64]models.Transaction
	nextUserID   int64
	nextTxID     int64

	faults map[string]fault
	holds  map[string]chan struct{}
	hits   map[string]int

	signKey  string
	tokenTTL time.Duration
	now      func() time.Time

	logger *logger.Logger
	router *chi.Mux
}

// Option customises a Server.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens. Zero issues tokens
// without exp.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

// WithSignKey sets the HS256 key.
func WithSignKey(key string) Option {
	return func(s *Server) { s.signKey = key }
}

// WithLogger logs every request to l.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New returns an empty fake backend.
func New(opts ...Option) *Server {
	s := &Server{
		users:        make(map[string]user),
		transactions: make(map[int64]models.Transaction),
		faults:       make(map[string]fault),
		holds:        make(map[string]chan struct{}),
		hits:         make(map[string]int),
		signKey:      "fakeapi-secret",
		tokenTTL:     time.Hour,
		now:          time.Now,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SeedUser registers an account directly and returns its identity.
func (s *Server) SeedUser(name, email, password string) models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addUser(name, email, password).identity
}

// IssueToken signs a token for identity with the server's key and TTL.
func (s *Server) IssueToken(identity models.Identity) (string, error) {
	return utils.SignIdentityToken(identity, s.tokenTTL, s.signKey)
}

// SeedTransaction stores a transaction owned by userID.
func (s *Server) SeedTransaction(userID int64, in models.TransactionInput) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addTransaction(userID, in)
}

// Transactions returns the stored transactions of userID in list order.
func (s *Server) Transactions(userID int64) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listFor(userID)
}

// Fail makes every request to route answer status with {"message": message}
// until Recover is called. An empty message sends an empty body.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faults[route] = fault{status: status, message: message}
}

// Recover removes the fault injected for route.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.faults, route)
}

// Hold blocks requests to route until the returned release function is
// called. Release is safe to call more than once.
func (s *Server) Hold(route string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gate := make(chan struct{})
	s.holds[route] = gate

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.holds[route] == gate {
				delete(s.holds, route)
			}
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Hits returns how many authenticated requests reached route, including
// those answered by an injected fault.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[route]
}

func (s *Server) addUser(name, email, password string) user {
	s.nextUserID++
	u := user{
		identity: models.Identity{ID: s.nextUserID, Email: email},
		name:     name,
		password: password,
	}
	s.users[email] = u
	return u
}

func (s *Server) addTransaction(userID int64, in models.TransactionInput) models.Transaction {
	s.nextTxID++
	tx := models.Transaction{
		ID:          s.nextTxID,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        models.CalendarDate(in.Date),
		UserID:      userID,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}
	s.transactions[tx.ID] = tx
	return tx
}
