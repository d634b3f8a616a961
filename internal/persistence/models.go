package persistence

import "time"

// User is the sole persisted entity: an account with its credential hash and
// the ordered list of days the user marked as available.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	Availability []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
