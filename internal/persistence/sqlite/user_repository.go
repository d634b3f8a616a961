package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/urlaubsplaner/internal/persistence"
)

// UserRepository implements persistence.UserRepository on SQLite.
//
// Case-insensitive name uniqueness is enforced by a UNIQUE index on the
// name_normalized column, so two racing registrations cannot both insert; the
// loser surfaces persistence.ErrDuplicate.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Migrate creates the schema when it does not exist yet.
func (r *UserRepository) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			name_normalized TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL,
			created_at      TEXT NOT NULL,
			updated_at      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS availability (
			user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			day      TEXT NOT NULL,
			PRIMARY KEY (user_id, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.pool.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user together with its availability rows.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.PasswordHash == "" {
		return fmt.Errorf("sqlite: user id and password hash are required")
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, name_normalized, password_hash, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			user.ID,
			user.Name,
			normalizeName(user.Name),
			user.PasswordHash,
			user.CreatedAt.Format(time.RFC3339),
			user.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return mapSQLiteError(err)
		}
		return insertAvailabilityTx(ctx, tx, user.ID, user.Availability)
	})
}

// SaveUser persists mutations to an existing record. The availability list is
// replaced wholesale, never merged.
func (r *UserRepository) SaveUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" {
		return persistence.ErrNotFound
	}

	user.UpdatedAt = time.Now().UTC()

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
			user.PasswordHash,
			user.UpdatedAt.Format(time.RFC3339),
			user.ID,
		)
		if err != nil {
			return mapSQLiteError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM availability WHERE user_id = ?`, user.ID); err != nil {
			return mapSQLiteError(err)
		}
		return insertAvailabilityTx(ctx, tx, user.ID, user.Availability)
	})
}

// GetUserByName retrieves the record whose name matches ignoring case. The
// argument is compared literally against the normalized column; no pattern
// matching is involved.
func (r *UserRepository) GetUserByName(ctx context.Context, name string) (persistence.User, error) {
	normalized := normalizeName(name)
	if normalized == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at, updated_at
		 FROM users WHERE name_normalized = ?`,
		normalized,
	)

	user, err := scanUser(row)
	if err != nil {
		return persistence.User{}, err
	}

	user.Availability, err = r.loadAvailability(ctx, user.ID)
	if err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

// ListUsers returns every record ordered by creation time then ID.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT id, name, password_hash, created_at, updated_at
		 FROM users ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	days, err := r.loadAllAvailability(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Availability = days[users[i].ID]
	}
	return users, nil
}

// DeleteUserByName removes the case-insensitive match and reports how many
// records were deleted (0 or 1).
func (r *UserRepository) DeleteUserByName(ctx context.Context, name string) (int64, error) {
	normalized := normalizeName(name)
	if normalized == "" {
		return 0, nil
	}

	var deleted int64
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE name_normalized = ?`, normalized).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return mapSQLiteError(err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM availability WHERE user_id = ?`, id); err != nil {
			return mapSQLiteError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			return mapSQLiteError(err)
		}
		deleted = 1
		return nil
	})
	return deleted, err
}

// DeleteAllUsers destroys every record and reports the count.
func (r *UserRepository) DeleteAllUsers(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&deleted); err != nil {
			return mapSQLiteError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM availability`); err != nil {
			return mapSQLiteError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return mapSQLiteError(err)
		}
		return nil
	})
	return deleted, err
}

func (r *UserRepository) loadAvailability(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT day FROM availability WHERE user_id = ? ORDER BY position ASC`,
		userID,
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	days := []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, mapSQLiteError(err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return days, nil
}

func (r *UserRepository) loadAllAvailability(ctx context.Context) (map[string][]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT user_id, day FROM availability ORDER BY user_id ASC, position ASC`,
	)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	days := make(map[string][]string)
	for rows.Next() {
		var userID, day string
		if err := rows.Scan(&userID, &day); err != nil {
			return nil, mapSQLiteError(err)
		}
		days[userID] = append(days[userID], day)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return days, nil
}

func insertAvailabilityTx(ctx context.Context, tx *sql.Tx, userID string, days []string) error {
	for position, day := range days {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO availability (user_id, position, day) VALUES (?, ?, ?)`,
			userID, position, day,
		); err != nil {
			return mapSQLiteError(err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (persistence.User, error) {
	var user persistence.User
	var createdAt, updatedAt string

	if err := row.Scan(&user.ID, &user.Name, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
		return persistence.User{}, mapSQLiteError(err)
	}

	var err error
	if user.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.User{}, fmt.Errorf("parse created_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.User{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return user, nil
}

// normalizeName lower-cases and trims a user name for the dedicated lookup
// column, so case variants collide on the unique index.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
