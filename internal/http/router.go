package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Accounts   *AccountHandler
	Admin      *AdminHandler
	AdminPage  *AdminPageHandler
	Health     *HealthHandler
	AdminGuard func(http.Handler) http.Handler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter maps the external routes onto the handlers. Admin API routes are
// wrapped with the AdminGuard; the admin page performs its own key check
// because a mismatch renders a login form, not an API failure.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	guard := cfg.AdminGuard
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	if cfg.Accounts != nil {
		mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Accounts.Register(w, r)
		})
		mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Accounts.Login(w, r)
		})
		mux.HandleFunc("/api/verfuegbarkeit", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Accounts.SetAvailability(w, r)
		})
		mux.HandleFunc("/nutzer", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Accounts.ListBasic(w, r)
		})
	}

	if cfg.Admin != nil {
		mux.Handle("/api/admin/nutzer", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Admin.ListDetailed(w, r)
		})))
		mux.Handle("/api/admin/nutzer/", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := strings.TrimPrefix(r.URL.Path, "/api/admin/nutzer/")
			if name == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			r = r.WithContext(ContextWithUserName(r.Context(), name))
			cfg.Admin.DeleteUser(w, r)
		})))
		mux.Handle("/api/admin/reset-passwort", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Admin.ResetPassword(w, r)
		})))
		mux.Handle("/api/admin/alle-loeschen", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Admin.DeleteAll(w, r)
		})))
	}

	if cfg.AdminPage != nil {
		mux.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.AdminPage.Serve(w, r)
		})
	}

	if cfg.Health != nil {
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Health.Check(w, r)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
