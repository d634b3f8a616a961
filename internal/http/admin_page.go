package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/example/urlaubsplaner/internal/application"
)

// AdminPageHandler serves GET /admin. A wrong or missing key renders the
// login form instead of a structured error; this path is a page, not an API.
type AdminPageHandler struct {
	gate    *application.AdminGate
	service adminService
	logger  *slog.Logger
}

func NewAdminPageHandler(gate *application.AdminGate, service adminService, logger *slog.Logger) *AdminPageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminPageHandler{gate: gate, service: service, logger: logger}
}

func (h *AdminPageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r.Context(), h.logger, "AdminPageHandler", "Serve")

	access, ok := h.gate.Authorize(r.URL.Query().Get("key"))
	if !ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := adminLoginTemplate.Execute(w, nil); err != nil {
			logger.ErrorContext(r.Context(), "failed to render admin login page", "error", err)
		}
		return
	}

	details, err := h.service.ListDetailed(r.Context(), access)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load admin overview", "error", err)
		details = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := adminOverviewTemplate.Execute(w, adminPageData{Users: details}); err != nil {
		logger.ErrorContext(r.Context(), "failed to render admin overview", "error", err)
	}
}

type adminPageData struct {
	Users []application.UserDetail
}

var adminLoginTemplate = template.Must(template.New("admin-login").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
    <title>Admin-Zugang</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: Arial, sans-serif; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #f0f0f5; }
        .login-box { background: white; padding: 40px; border-radius: 10px; box-shadow: 0 4px 20px rgba(0,0,0,0.15); text-align: center; max-width: 350px; width: 90%; }
        input[type="password"] { width: 100%; padding: 12px; font-size: 16px; border: 2px solid #ddd; border-radius: 5px; margin: 15px 0; box-sizing: border-box; }
        button { background: #4CAF50; color: white; padding: 12px 30px; border: none; border-radius: 5px; font-size: 16px; cursor: pointer; }
    </style>
</head>
<body>
    <div class="login-box">
        <h2>Admin-Bereich</h2>
        <p>Passwort erforderlich</p>
        <form method="GET" action="/admin">
            <input type="password" name="key" placeholder="Admin-Passwort" required>
            <br>
            <button type="submit">Einloggen</button>
        </form>
    </div>
</body>
</html>
`))

var adminOverviewTemplate = template.Must(template.New("admin-overview").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
    <title>Admin-Übersicht</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f0f0f5; }
        table { border-collapse: collapse; background: white; width: 100%; max-width: 700px; }
        th, td { border: 1px solid #ddd; padding: 10px 14px; text-align: left; }
        th { background: #4CAF50; color: white; }
    </style>
</head>
<body>
    <h1>Registrierte Nutzer</h1>
    <table>
        <tr><th>ID</th><th>Name</th><th>Anzahl Tage</th></tr>
        {{range .Users}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.AvailabilityCount}}</td></tr>
        {{else}}<tr><td colspan="3">Keine Nutzer registriert.</td></tr>
        {{end}}
    </table>
</body>
</html>
`))
