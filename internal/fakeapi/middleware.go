package fakeapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-fin-track/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// withRequestID echoes the caller's request id, or a fresh one, and attaches
// a logger carrying it to the request context.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		l := s.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.FromContext(r.Context()).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Send()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
