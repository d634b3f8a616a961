package application

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
)

// AdminAccess is the capability minted by a successful key check. Admin
// operations require it explicitly; a zero value grants nothing. There is no
// session: every request presents the key again.
type AdminAccess struct {
	granted bool
}

// Granted reports whether the capability authorizes admin operations.
func (a AdminAccess) Granted() bool {
	return a.granted
}

// AdminGate compares a caller-supplied key against the configured shared
// secret in constant time.
type AdminGate struct {
	secret string
}

// NewAdminGate returns a gate for the configured admin key.
func NewAdminGate(secret string) *AdminGate {
	return &AdminGate{secret: secret}
}

// Authorize mints an AdminAccess capability when key matches the secret.
func (g *AdminGate) Authorize(key string) (AdminAccess, bool) {
	if g == nil || g.secret == "" {
		return AdminAccess{}, false
	}
	if subtle.ConstantTimeCompare([]byte(g.secret), []byte(key)) == 1 {
		return AdminAccess{granted: true}, true
	}
	return AdminAccess{}, false
}

// AdminService implements the privileged operations on the user directory.
type AdminService struct {
	directory Directory
	hasher    PasswordHasher
	logger    *slog.Logger
}

// NewAdminService wires dependencies for the admin service.
func NewAdminService(directory Directory, hasher PasswordHasher, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{directory: directory, hasher: hasher, logger: logger}
}

func (s *AdminService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AdminService", operation, attrs...)
}

// ListDetailed returns identity and availability counts for every user. The
// hash and the full day list stay out of the result.
func (s *AdminService) ListDetailed(ctx context.Context, access AdminAccess) ([]UserDetail, error) {
	if s == nil || s.directory == nil {
		return nil, fmt.Errorf("admin service not configured")
	}
	if !access.Granted() {
		return nil, ErrUnauthorized
	}

	all, err := s.directory.List(ctx)
	if err != nil {
		s.loggerWith(ctx, "ListDetailed").ErrorContext(ctx, "listing failed", "error", err)
		return nil, err
	}

	details := make([]UserDetail, 0, len(all))
	for _, creds := range all {
		details = append(details, UserDetail{
			ID:                creds.ID,
			Name:              creds.Name,
			AvailabilityCount: len(creds.Availability),
		})
	}
	return details, nil
}

// ResetPassword overwrites the user's credential hash with one derived from
// newPassword.
func (s *AdminService) ResetPassword(ctx context.Context, access AdminAccess, name, newPassword string) (err error) {
	if s == nil || s.directory == nil || s.hasher == nil {
		return fmt.Errorf("admin service not configured")
	}
	if !access.Granted() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "ResetPassword", "name", strings.TrimSpace(name))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "password reset failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "password reset")
	}()

	creds, err := s.directory.FindByName(ctx, name)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	creds.PasswordHash = hash
	return s.directory.Save(ctx, creds)
}

// DeleteUser removes the case-insensitive name match.
func (s *AdminService) DeleteUser(ctx context.Context, access AdminAccess, name string) (err error) {
	if s == nil || s.directory == nil {
		return fmt.Errorf("admin service not configured")
	}
	if !access.Granted() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "DeleteUser", "name", strings.TrimSpace(name))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "user delete failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user deleted")
	}()

	count, err := s.directory.DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll destroys every record. Zero deletions is still success.
func (s *AdminService) DeleteAll(ctx context.Context, access AdminAccess) (int64, error) {
	if s == nil || s.directory == nil {
		return 0, fmt.Errorf("admin service not configured")
	}
	if !access.Granted() {
		return 0, ErrUnauthorized
	}

	count, err := s.directory.DeleteAll(ctx)
	if err != nil {
		s.loggerWith(ctx, "DeleteAll").ErrorContext(ctx, "delete all failed", "error", err)
		return 0, err
	}

	s.loggerWith(ctx, "DeleteAll", "deleted", count).InfoContext(ctx, "all users deleted")
	return count, nil
}
