package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/urlaubsplaner/internal/application"
)

type accountService interface {
	Register(ctx context.Context, name, password string) error
	Login(ctx context.Context, name, password string) (application.User, error)
	SetAvailability(ctx context.Context, name string, days []string) error
	ListBasic(ctx context.Context) ([]application.User, error)
}

// AccountHandler serves the public account operations.
type AccountHandler struct {
	service   accountService
	responder responder
	logger    *slog.Logger
}

func NewAccountHandler(service accountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{service: service, responder: newResponder(logger), logger: logger}
}

func (h *AccountHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "AccountHandler", operation, attrs...)
}

type registerRequest struct {
	Name     string `json:"name"`
	Passwort string `json:"passwort"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Register", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode register request", "error", err)
		h.responder.writeFailure(r.Context(), w, msgServerError)
		return
	}

	logger := h.log(r.Context(), "Register", "name", req.Name)

	if err := h.service.Register(r.Context(), req.Name, req.Passwort); err != nil {
		logger.ErrorContext(r.Context(), "registration rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "user registered")
	h.responder.writeSuccess(r.Context(), w)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Login", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode login request", "error", err)
		h.responder.writeFailure(r.Context(), w, msgServerError)
		return
	}

	logger := h.log(r.Context(), "Login", "name", req.Name)

	user, err := h.service.Login(r.Context(), req.Name, req.Passwort)
	if err != nil {
		logger.ErrorContext(r.Context(), "login rejected", "error", err, "error_kind", application.ErrorKind(err))
		// Login distinguishes an unknown name from a wrong password; the
		// availability planner is not a secrecy-sensitive system.
		if errors.Is(err, application.ErrNotFound) {
			h.responder.writeFailure(r.Context(), w, msgNameNotFound)
			return
		}
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("user_id", user.ID).InfoContext(r.Context(), "login succeeded")
	dto := toUserDTO(user)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, envelope{Erfolg: true, Nutzer: &dto})
}

type availabilityRequest struct {
	Name           string   `json:"name"`
	Verfuegbarkeit []string `json:"verfuegbarkeit"`
}

func (h *AccountHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetAvailability", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability request", "error", err)
		h.responder.writeFailure(r.Context(), w, msgServerError)
		return
	}

	logger := h.log(r.Context(), "SetAvailability", "name", req.Name, "day_count", len(req.Verfuegbarkeit))

	if err := h.service.SetAvailability(r.Context(), req.Name, req.Verfuegbarkeit); err != nil {
		logger.ErrorContext(r.Context(), "availability update rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "availability saved")
	h.responder.writeSuccess(r.Context(), w)
}

type basicUserDTO struct {
	Name           string   `json:"name"`
	Verfuegbarkeit []string `json:"verfuegbarkeit"`
}

// ListBasic serves the shared overview. The response is a bare array; on a
// storage failure the contract degrades to an empty list rather than an
// error envelope.
func (h *AccountHandler) ListBasic(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListBasic(r.Context())
	if err != nil {
		h.log(r.Context(), "ListBasic").ErrorContext(r.Context(), "listing failed", "error", err)
		h.responder.writeJSON(r.Context(), w, http.StatusOK, []basicUserDTO{})
		return
	}

	out := make([]basicUserDTO, 0, len(users))
	for _, user := range users {
		days := user.Availability
		if days == nil {
			days = []string{}
		}
		out = append(out, basicUserDTO{Name: user.Name, Verfuegbarkeit: days})
	}

	h.log(r.Context(), "ListBasic", "result_count", len(out)).InfoContext(r.Context(), "users listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}
