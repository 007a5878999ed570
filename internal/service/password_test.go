package service

import (
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewPasswordHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewPasswordHasher(100, 2)

	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost() error = %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}

func TestNewPasswordHasher_ClampsInvalidWorkers(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 0)

	if _, err := hasher.Hash("password123"); err != nil {
		t.Errorf("Hash() with clamped workers error = %v", err)
	}
}

// =============================================================================
// Hash / Verify Tests
// =============================================================================

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "password123"},
		{name: "short password", password: "a"},
		{name: "long password", password: strings.Repeat("x", 72)},
		{name: "unicode password", password: "pār0le-драугс"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Error("Hash() returned the plaintext password")
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() = false for matching password")
			}
			if hasher.Verify(tt.password+"x", hash) {
				t.Error("Verify() = true for wrong password")
			}
		})
	}
}

func TestPasswordHasher_HashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)

	first, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "plaintext stored", hash: "password123"},
		{name: "truncated bcrypt", hash: "$2a$10$abc"},
		{name: "garbage bytes", hash: "\x00\x01\x02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hasher.Verify("password123", tt.hash) {
				t.Error("Verify() = true for malformed hash")
			}
		})
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestPasswordHasher_ConcurrentUse(t *testing.T) {
	// More goroutines than semaphore slots; all must complete correctly.
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := hasher.Hash("password123")
			if err != nil {
				t.Errorf("Hash() error = %v", err)
				return
			}
			if !hasher.Verify("password123", hash) {
				t.Error("Verify() = false after concurrent Hash()")
			}
		}()
	}
	wg.Wait()
}
