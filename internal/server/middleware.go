package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/renobudget/internal/logging"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDFromContext returns the request ID set by the middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reuses the caller's X-Request-ID or generates one.
func (s *Service) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// logRequests counts requests and logs each one with a request-scoped logger.
func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With(slog.String("request_id", RequestIDFromContext(r.Context())))
		r = r.WithContext(logging.WithLogger(r.Context(), logger))

		s.mu.Lock()
		s.requests++
		s.mu.Unlock()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		logging.LogHTTPRequest(logger, r.Method, r.URL.Path, sw.status,
			float64(time.Since(start).Nanoseconds())/1e6,
			slog.String("user_agent", r.Header.Get("User-Agent")))
	})
}
