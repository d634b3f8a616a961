package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/urlaubsplaner/internal/application"
	"github.com/example/urlaubsplaner/internal/config"
	httptransport "github.com/example/urlaubsplaner/internal/http"
	"github.com/example/urlaubsplaner/internal/persistence"
	"github.com/example/urlaubsplaner/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	userRepo := sqlite.NewUserRepository(pool)
	if err := userRepo.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	directory := newDirectoryAdapter(userRepo)
	hasher := application.NewBcryptHasher(cfg.BcryptCost)
	gate := application.NewAdminGate(cfg.AdminKey)

	accountService := application.NewAccountService(directory, hasher, nil, logger)
	adminService := application.NewAdminService(directory, hasher, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Accounts:   httptransport.NewAccountHandler(accountService, logger),
		Admin:      httptransport.NewAdminHandler(adminService, logger),
		AdminPage:  httptransport.NewAdminPageHandler(gate, adminService, logger),
		Health:     httptransport.NewHealthHandler(pool, logger),
		AdminGuard: httptransport.RequireAdminKey(gate, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("planner API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// directoryAdapter bridges the application's Directory to the persistence
// repository, translating models and storage sentinels in both directions.
type directoryAdapter struct {
	repo persistence.UserRepository
}

func newDirectoryAdapter(repo persistence.UserRepository) *directoryAdapter {
	return &directoryAdapter{repo: repo}
}

func (a *directoryAdapter) FindByName(ctx context.Context, name string) (application.Credentials, error) {
	stored, err := a.repo.GetUserByName(ctx, name)
	if err != nil {
		return application.Credentials{}, mapStorageError(err)
	}
	return toApplicationCredentials(stored), nil
}

func (a *directoryAdapter) Create(ctx context.Context, creds application.Credentials) error {
	if err := a.repo.CreateUser(ctx, toPersistenceUser(creds)); err != nil {
		return mapStorageError(err)
	}
	return nil
}

func (a *directoryAdapter) Save(ctx context.Context, creds application.Credentials) error {
	if err := a.repo.SaveUser(ctx, toPersistenceUser(creds)); err != nil {
		return mapStorageError(err)
	}
	return nil
}

func (a *directoryAdapter) List(ctx context.Context) ([]application.Credentials, error) {
	models, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	out := make([]application.Credentials, 0, len(models))
	for _, model := range models {
		out = append(out, toApplicationCredentials(model))
	}
	return out, nil
}

func (a *directoryAdapter) DeleteByName(ctx context.Context, name string) (int64, error) {
	count, err := a.repo.DeleteUserByName(ctx, name)
	if err != nil {
		return 0, mapStorageError(err)
	}
	return count, nil
}

func (a *directoryAdapter) DeleteAll(ctx context.Context) (int64, error) {
	count, err := a.repo.DeleteAllUsers(ctx)
	if err != nil {
		return 0, mapStorageError(err)
	}
	return count, nil
}

func mapStorageError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return application.ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return application.ErrNameTaken
	default:
		return err
	}
}

func toApplicationCredentials(model persistence.User) application.Credentials {
	return application.Credentials{
		User: application.User{
			ID:           model.ID,
			Name:         model.Name,
			Availability: append([]string(nil), model.Availability...),
		},
		PasswordHash: model.PasswordHash,
	}
}

func toPersistenceUser(creds application.Credentials) persistence.User {
	return persistence.User{
		ID:           creds.ID,
		Name:         creds.Name,
		PasswordHash: creds.PasswordHash,
		Availability: append([]string(nil), creds.Availability...),
	}
}
