package http

import (
	"context"

	"github.com/example/urlaubsplaner/internal/application"
)

type contextKey string

const (
	adminAccessContextKey contextKey = "admin_access"
	userNameContextKey    contextKey = "user_name"
)

// ContextWithAdminAccess returns a derived context carrying a minted admin
// capability. Only the admin-key middleware sets this.
func ContextWithAdminAccess(ctx context.Context, access application.AdminAccess) context.Context {
	return context.WithValue(ctx, adminAccessContextKey, access)
}

// AdminAccessFromContext extracts the admin capability. The zero value is
// returned when none was minted; the services treat it as unauthorized.
func AdminAccessFromContext(ctx context.Context) application.AdminAccess {
	access, _ := ctx.Value(adminAccessContextKey).(application.AdminAccess)
	return access
}

// ContextWithUserName injects the user name resolved from the request path.
func ContextWithUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, userNameContextKey, name)
}

// UserNameFromContext extracts a user name previously associated with the context.
func UserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userNameContextKey).(string)
	return name, ok
}
