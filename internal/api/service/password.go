package service

import (
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input limit; longer input would be silently truncated.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords. Hashes embed their own salt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(plain, hash string) bool
}

// NewPasswordHasher creates a bcrypt hasher. cost <= 0 selects bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

type bcryptHasher struct {
	cost int
}

// Hash rejects input over MaxPasswordBytes before hashing anything.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len([]byte(password)) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
