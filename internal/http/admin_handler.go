package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/urlaubsplaner/internal/application"
)

type adminService interface {
	ListDetailed(ctx context.Context, access application.AdminAccess) ([]application.UserDetail, error)
	ResetPassword(ctx context.Context, access application.AdminAccess, name, newPassword string) error
	DeleteUser(ctx context.Context, access application.AdminAccess, name string) error
	DeleteAll(ctx context.Context, access application.AdminAccess) (int64, error)
}

// AdminHandler serves the privileged API. The admin-key middleware mints the
// capability; the handler only carries it into the service, which enforces it.
type AdminHandler struct {
	service   adminService
	responder responder
	logger    *slog.Logger
}

func NewAdminHandler(service adminService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{service: service, responder: newResponder(logger), logger: logger}
}

func (h *AdminHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "AdminHandler", operation, attrs...)
}

type adminUserDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnzahlTage int    `json:"anzahlTage"`
}

// ListDetailed returns id, name and day count per user as a bare array. The
// hash and the day list itself never appear here.
func (h *AdminHandler) ListDetailed(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.ListDetailed(r.Context(), AdminAccessFromContext(r.Context()))
	if err != nil {
		h.log(r.Context(), "ListDetailed").ErrorContext(r.Context(), "admin listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.writeJSON(r.Context(), w, http.StatusOK, []adminUserDTO{})
		return
	}

	out := make([]adminUserDTO, 0, len(details))
	for _, detail := range details {
		out = append(out, adminUserDTO{ID: detail.ID, Name: detail.Name, AnzahlTage: detail.AvailabilityCount})
	}

	h.log(r.Context(), "ListDetailed", "result_count", len(out)).InfoContext(r.Context(), "admin listing served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}

type resetPasswordRequest struct {
	Name          string `json:"name"`
	NeuesPasswort string `json:"neuesPasswort"`
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "ResetPassword", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reset request", "error", err)
		h.responder.writeFailure(r.Context(), w, msgServerError)
		return
	}

	logger := h.log(r.Context(), "ResetPassword", "name", req.Name)

	if err := h.service.ResetPassword(r.Context(), AdminAccessFromContext(r.Context()), req.Name, req.NeuesPasswort); err != nil {
		logger.ErrorContext(r.Context(), "password reset rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "password reset")
	h.responder.writeSuccess(r.Context(), w)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	name, ok := UserNameFromContext(r.Context())
	if !ok || strings.TrimSpace(name) == "" {
		h.log(r.Context(), "DeleteUser", "error_kind", "bad_request").ErrorContext(r.Context(), "missing user name for delete")
		h.responder.writeFailure(r.Context(), w, msgUserNotFound)
		return
	}

	logger := h.log(r.Context(), "DeleteUser", "name", name)

	if err := h.service.DeleteUser(r.Context(), AdminAccessFromContext(r.Context()), name); err != nil {
		logger.ErrorContext(r.Context(), "user delete rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "user deleted")
	h.responder.writeSuccess(r.Context(), w)
}

func (h *AdminHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	logger := h.log(r.Context(), "DeleteAll")

	count, err := h.service.DeleteAll(r.Context(), AdminAccessFromContext(r.Context()))
	if err != nil {
		logger.ErrorContext(r.Context(), "delete all rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("deleted", count).InfoContext(r.Context(), "all users deleted")
	h.responder.writeSuccess(r.Context(), w)
}
