package http

import (
	"context"
	"log/slog"
	"net/http"
)

// StorePinger reports whether the persistent store is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes store reachability. A storage outage after startup no
// longer degrades silently: this endpoint flips to 503.
type HealthHandler struct {
	store     StorePinger
	responder responder
	logger    *slog.Logger
}

func NewHealthHandler(store StorePinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{store: store, responder: newResponder(logger), logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		handlerLogger(r.Context(), h.logger, "HealthHandler", "Check").
			ErrorContext(r.Context(), "store unreachable", "error", err)
		h.responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, healthResponse{Status: "degraded"})
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, healthResponse{Status: "ok"})
}
