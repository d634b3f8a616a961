package application

// User is the view of an account that may leave the service layer. The
// credential hash is deliberately absent.
type User struct {
	ID           string
	Name         string
	Availability []string
}

// Credentials pairs a user with its stored credential hash. It is confined to
// the service and directory layers and never serialized.
type Credentials struct {
	User
	PasswordHash string
}

// UserDetail is the administrative listing entry: identity plus the number of
// marked days, without the day list itself.
type UserDetail struct {
	ID                string
	Name              string
	AvailabilityCount int
}
