package utils

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the correlation id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// CORS middleware to allow cross-origin requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func accessLogMiddleware(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			logger.WithFields(logrus.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    rec.status,
				"bytes":     rec.bytes,
				"duration":  time.Since(started).Round(time.Microsecond).String(),
				"requestId": RequestID(r.Context()),
			}).Info("request")
		})
	}
}

func unmatched(accessLog mux.MiddlewareFunc, status int, message string) http.Handler {
	return requestIDMiddleware(accessLog(securityHeadersMiddleware(corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, status, message)
	})))))
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}

// NewRouter constructs the base mux router with common middleware and the
// health route. A nil logger disables access logging.
func NewRouter(logger logrus.FieldLogger, tag string) *mux.Router {
	r := mux.NewRouter()

	accessLog := mux.MiddlewareFunc(noopMiddleware)
	if logger != nil {
		accessLog = accessLogMiddleware(logger.WithField("component", "http"))
	}

	r.Use(requestIDMiddleware)
	r.Use(accessLog)
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware)

	// mux skips middleware for unmatched routes, so wrap them here too.
	r.NotFoundHandler = unmatched(accessLog, http.StatusNotFound, "Not found")
	r.MethodNotAllowedHandler = unmatched(accessLog, http.StatusMethodNotAllowed, "Method not allowed")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"tag":    tag,
		})
	}).Methods(http.MethodGet, http.MethodOptions)
	return r
}
