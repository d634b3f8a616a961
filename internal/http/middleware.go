package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/example/urlaubsplaner/internal/application"
	"github.com/example/urlaubsplaner/internal/logging"
)

// RequireAdminKey gates administrative routes. The key is presented on every
// request via the X-Admin-Key header or the key query parameter; there is no
// session. A match mints an AdminAccess capability into the context.
func RequireAdminKey(gate *application.AdminGate, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				key = r.URL.Query().Get("key")
			}

			access, ok := gate.Authorize(key)
			if !ok {
				handlerLogger(r.Context(), logger, "RequireAdminKey", "", "path", r.URL.Path).
					WarnContext(r.Context(), "admin key rejected")
				responder.writeFailure(r.Context(), w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithAdminAccess(r.Context(), access)))
		})
	}
}

// RequestLogger attaches a request-scoped logger to the context and records
// request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
