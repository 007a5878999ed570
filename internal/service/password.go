package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type passwordHasher struct {
	cost  int
	slots chan struct{}
}

// NewPasswordHasher creates a bcrypt-backed PasswordHasher. bcrypt is
// deliberately slow, so at most workers hash/verify operations run at once;
// excess callers queue rather than saturating every CPU during a signup or
// login burst.
func NewPasswordHasher(cost, workers int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers < 1 {
		workers = 1
	}
	return &passwordHasher{
		cost:  cost,
		slots: make(chan struct{}, workers),
	}
}

func (h *passwordHasher) acquire() func() {
	h.slots <- struct{}{}
	return func() { <-h.slots }
}

func (h *passwordHasher) Hash(password string) (string, error) {
	release := h.acquire()
	defer release()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. Malformed hashes
// verify as false rather than erroring; bcrypt's comparison is constant-time
// over the digest.
func (h *passwordHasher) Verify(password, hash string) bool {
	release := h.acquire()
	defer release()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
