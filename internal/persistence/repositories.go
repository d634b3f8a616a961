package persistence

import "context"

// UserRepository exposes the storage operations for user records.
//
// Name lookups are case-insensitive: implementations match against a
// normalized form of the stored name and must treat the argument as a literal
// value, never as a pattern.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	SaveUser(ctx context.Context, user User) error
	GetUserByName(ctx context.Context, name string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUserByName(ctx context.Context, name string) (int64, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
}
