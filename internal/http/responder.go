package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/urlaubsplaner/internal/application"
	"github.com/example/urlaubsplaner/internal/logging"
)

// Messages of the external contract. Logical failures travel in-band inside
// the envelope; existing clients parse these exact strings.
const (
	msgNameRequired  = "Name darf nicht leer sein!"
	msgNameTaken     = "Dieser Name ist bereits vergeben!"
	msgNameNotFound  = "Name nicht gefunden!"
	msgWrongPassword = "Falsches Passwort!"
	msgUserNotFound  = "Nutzer nicht gefunden!"
	msgServerError   = "Serverfehler!"
	msgUnauthorized  = "Nicht autorisiert!"
)

// envelope is the fixed response shape for mutating and query operations.
// erfolg=false always carries a fehler message; the HTTP status stays 200.
type envelope struct {
	Erfolg bool     `json:"erfolg"`
	Fehler string   `json:"fehler,omitempty"`
	Nutzer *userDTO `json:"nutzer,omitempty"`
}

type userDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Verfuegbarkeit []string `json:"verfuegbarkeit"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeSuccess emits the bare success envelope.
func (r responder) writeSuccess(ctx context.Context, w http.ResponseWriter) {
	r.writeJSON(ctx, w, http.StatusOK, envelope{Erfolg: true})
}

// writeFailure emits an in-band failure at HTTP 200.
func (r responder) writeFailure(ctx context.Context, w http.ResponseWriter, message string) {
	r.writeJSON(ctx, w, http.StatusOK, envelope{Erfolg: false, Fehler: message})
}

// handleServiceError maps service sentinels to the contract's failure
// messages. Anything unexpected degrades to the generic server failure.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrNameRequired):
		r.writeFailure(ctx, w, msgNameRequired)
	case errors.Is(err, application.ErrNameTaken):
		r.writeFailure(ctx, w, msgNameTaken)
	case errors.Is(err, application.ErrNotFound):
		r.writeFailure(ctx, w, msgUserNotFound)
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeFailure(ctx, w, msgWrongPassword)
	case errors.Is(err, application.ErrUnauthorized):
		r.writeFailure(ctx, w, msgUnauthorized)
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err)
		r.writeFailure(ctx, w, msgServerError)
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, r.logger)
}

func toUserDTO(user application.User) userDTO {
	days := user.Availability
	if days == nil {
		days = []string{}
	}
	return userDTO{
		ID:             user.ID,
		Name:           user.Name,
		Verfuegbarkeit: days,
	}
}
