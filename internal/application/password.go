package application

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and checks one-way credential hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored token. Malformed
	// tokens yield false; Verify never fails in any other way.
	Verify(plaintext, hashed string) bool
}

// BcryptHasher hashes passwords with bcrypt. Each call salts independently,
// so equal passwords produce distinct tokens.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor. Out-of-range
// costs fall back to 10, matching the login-latency tradeoff this service is
// tuned for.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
