package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Directory exposes the user-record store to the services. Name lookups are
// case-insensitive and literal.
type Directory interface {
	FindByName(ctx context.Context, name string) (Credentials, error)
	Create(ctx context.Context, creds Credentials) error
	Save(ctx context.Context, creds Credentials) error
	List(ctx context.Context) ([]Credentials, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// AccountService implements registration, login and availability updates.
// Every call is atomic and self-contained; there is no session state.
type AccountService struct {
	directory   Directory
	hasher      PasswordHasher
	idGenerator func() string
	logger      *slog.Logger
}

// NewAccountService wires dependencies for the account service.
func NewAccountService(directory Directory, hasher PasswordHasher, idGenerator func() string, logger *slog.Logger) *AccountService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		directory:   directory,
		hasher:      hasher,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

func (s *AccountService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// Register creates a new user with an empty availability list. The name must
// be non-empty after trimming and unique ignoring case. The pre-check narrows
// the race window; the store's unique constraint decides races for good, and
// a losing insert surfaces as ErrNameTaken as well.
func (s *AccountService) Register(ctx context.Context, name, password string) (err error) {
	if s == nil || s.directory == nil || s.hasher == nil {
		return fmt.Errorf("account service not configured")
	}

	trimmed := strings.TrimSpace(name)
	logger := s.loggerWith(ctx, "Register", "name", trimmed)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user registered")
	}()

	if trimmed == "" {
		return ErrNameRequired
	}

	if _, err := s.directory.FindByName(ctx, trimmed); err == nil {
		return ErrNameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	creds := Credentials{
		User: User{
			ID:           s.idGenerator(),
			Name:         trimmed,
			Availability: []string{},
		},
		PasswordHash: hash,
	}
	return s.directory.Create(ctx, creds)
}

// Login verifies the password for the case-insensitive name match and returns
// the user without its credential hash.
func (s *AccountService) Login(ctx context.Context, name, password string) (user User, err error) {
	if s == nil || s.directory == nil || s.hasher == nil {
		return User{}, fmt.Errorf("account service not configured")
	}

	logger := s.loggerWith(ctx, "Login", "name", strings.TrimSpace(name))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "login succeeded")
	}()

	creds, err := s.directory.FindByName(ctx, name)
	if err != nil {
		return User{}, err
	}

	if !s.hasher.Verify(password, creds.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	return creds.User, nil
}

// SetAvailability replaces the user's availability wholesale. Days are opaque
// tokens and are not validated.
func (s *AccountService) SetAvailability(ctx context.Context, name string, days []string) (err error) {
	if s == nil || s.directory == nil {
		return fmt.Errorf("account service not configured")
	}

	logger := s.loggerWith(ctx, "SetAvailability", "name", strings.TrimSpace(name), "day_count", len(days))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "availability update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "availability saved")
	}()

	creds, err := s.directory.FindByName(ctx, name)
	if err != nil {
		return err
	}

	creds.Availability = append([]string{}, days...)
	return s.directory.Save(ctx, creds)
}

// ListBasic returns every user's name and availability for the shared
// overview. Credential hashes never appear in the result.
func (s *AccountService) ListBasic(ctx context.Context) ([]User, error) {
	if s == nil || s.directory == nil {
		return nil, fmt.Errorf("account service not configured")
	}

	all, err := s.directory.List(ctx)
	if err != nil {
		s.loggerWith(ctx, "ListBasic").ErrorContext(ctx, "listing failed", "error", err)
		return nil, err
	}

	users := make([]User, 0, len(all))
	for _, creds := range all {
		users = append(users, creds.User)
	}
	return users, nil
}
