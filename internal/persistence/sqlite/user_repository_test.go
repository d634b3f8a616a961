package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/urlaubsplaner/internal/persistence"
)

func newTestRepository(t *testing.T) *UserRepository {
	t.Helper()

	pool, err := NewConnectionPool(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("NewConnectionPool failed: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("failed to close pool: %v", err)
		}
	})

	repo := NewUserRepository(pool)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return repo
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	user := persistence.User{
		ID:           "user-1",
		Name:         "Anna",
		PasswordHash: "hash-1",
		Availability: []string{"2025-07-01", "2025-07-02"},
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	for _, lookup := range []string{"Anna", "ANNA", "anna", "  anna  "} {
		stored, err := repo.GetUserByName(ctx, lookup)
		if err != nil {
			t.Fatalf("GetUserByName(%q) failed: %v", lookup, err)
		}
		if stored.ID != "user-1" {
			t.Fatalf("expected user-1, got %s", stored.ID)
		}
		if stored.Name != "Anna" {
			t.Fatalf("expected original casing to be preserved, got %q", stored.Name)
		}
		if len(stored.Availability) != 2 || stored.Availability[0] != "2025-07-01" {
			t.Fatalf("unexpected availability: %#v", stored.Availability)
		}
	}
}

func TestUserRepository_LiteralLookup(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.CreateUser(ctx, persistence.User{ID: "user-1", Name: "Anna", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Pattern syntax must not match anything; the name is a literal value.
	for _, lookup := range []string{"An%", "An_a", ".*", "^anna$", "a"} {
		if _, err := repo.GetUserByName(ctx, lookup); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", lookup, err)
		}
	}
}

func TestUserRepository_UniqueNormalizedName(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.CreateUser(ctx, persistence.User{ID: "user-1", Name: "Anna", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	err := repo.CreateUser(ctx, persistence.User{ID: "user-2", Name: "ANNA", PasswordHash: "h"})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for case variant, got %v", err)
	}

	// The losing insert must leave no partial state behind.
	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected a single record, got %d", len(users))
	}
}

func TestUserRepository_SaveReplacesAvailability(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.CreateUser(ctx, persistence.User{ID: "user-1", Name: "Anna", PasswordHash: "h", Availability: []string{"2025-07-01"}}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	stored, err := repo.GetUserByName(ctx, "anna")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}

	stored.Availability = []string{"2025-08-01", "2025-08-02", "2025-08-03"}
	if err := repo.SaveUser(ctx, stored); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	updated, err := repo.GetUserByName(ctx, "anna")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}
	if len(updated.Availability) != 3 || updated.Availability[0] != "2025-08-01" {
		t.Fatalf("expected replaced availability, got %#v", updated.Availability)
	}

	stored.Availability = nil
	if err := repo.SaveUser(ctx, stored); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	cleared, err := repo.GetUserByName(ctx, "anna")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}
	if len(cleared.Availability) != 0 {
		t.Fatalf("expected empty availability, got %#v", cleared.Availability)
	}
}

func TestUserRepository_SaveMissingUser(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	err := repo.SaveUser(context.Background(), persistence.User{ID: "ghost", PasswordHash: "h"})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DeleteByName(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.CreateUser(ctx, persistence.User{ID: "user-1", Name: "Anna", PasswordHash: "h", Availability: []string{"2025-07-01"}}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	count, err := repo.DeleteUserByName(ctx, "ANNA")
	if err != nil {
		t.Fatalf("DeleteUserByName failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 deletion, got %d", count)
	}

	count, err = repo.DeleteUserByName(ctx, "anna")
	if err != nil {
		t.Fatalf("DeleteUserByName failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 deletions for missing user, got %d", count)
	}
}

func TestUserRepository_DeleteAll(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Anna", "Ben", "Carla"} {
		if err := repo.CreateUser(ctx, persistence.User{ID: "id-" + name, Name: name, PasswordHash: "h"}); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
	}

	count, err := repo.DeleteAllUsers(ctx)
	if err != nil {
		t.Fatalf("DeleteAllUsers failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 deletions, got %d", count)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty directory, got %d users", len(users))
	}

	count, err = repo.DeleteAllUsers(ctx)
	if err != nil {
		t.Fatalf("DeleteAllUsers failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 deletions on empty directory, got %d", count)
	}
}

func TestUserRepository_ListOrdering(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.CreateUser(ctx, persistence.User{ID: id, Name: "user-" + id, PasswordHash: "h"}); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", id, err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, id := range []string{"a", "b", "c"} {
		if users[i].ID != id {
			t.Fatalf("unexpected ordering: %#v", users)
		}
	}
}
