package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-fin-track/internal/utils"
)

func (s *Server) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, s.withRequestID, s.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(s.guard(RouteRegister)).Post("/auth/register", s.register)
		r.With(s.guard(RouteLogin)).Post("/auth/login", s.login)
	})

	router.Route("/transactions", func(r chi.Router) {
		r.Use(s.auth)

		r.With(s.guard(RouteListTransactions)).Get("/", s.listTransactions)
		r.With(s.guard(RouteCreateTransaction)).Post("/", s.createTransaction)
		r.With(s.guard(RouteSummary)).Get("/summary", s.summary)
		r.With(s.guard(RouteUpdateTransaction)).Put("/{id}", s.updateTransaction)
		r.With(s.guard(RouteDeleteTransaction)).Delete("/{id}", s.deleteTransaction)
	})

	return router
}

// guard counts the hit, waits on a hold and answers an injected fault for
// route before the real handler runs.
func (s *Server) guard(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			s.hits[route]++
			gate := s.holds[route]
			s.mu.Unlock()

			if gate != nil {
				select {
				case <-gate:
				case <-r.Context().Done():
					return
				}
			}

			s.mu.Lock()
			f, failing := s.faults[route]
			s.mu.Unlock()

			if failing {
				if f.message == "" {
					w.WriteHeader(f.status)
					return
				}
				utils.WriteMessage(w, f.message, f.status)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// auth enforces bearer authentication and stores the identity in the
// request context.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			utils.WriteMessage(w, "Token não fornecido.", http.StatusUnauthorized)
			return
		}

		identity, err := utils.ValidateIdentityToken(token, s.signKey)
		if err != nil {
			utils.WriteMessage(w, "Token inválido.", http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		u, known := s.users[identity.Email]
		s.mu.Unlock()
		if !known || u.identity.ID != identity.ID {
			utils.WriteMessage(w, "Token inválido.", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}
