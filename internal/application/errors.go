package application

import "errors"

var (
	// ErrNameRequired is returned when a registration name is empty after trimming.
	ErrNameRequired = errors.New("application: name required")
	// ErrNameTaken is returned when a case-insensitive name match already exists.
	ErrNameTaken = errors.New("application: name already taken")
	// ErrNotFound is returned when no user matches the given name.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrUnauthorized is returned when an admin operation is invoked without a granted capability.
	ErrUnauthorized = errors.New("application: unauthorized")
)
