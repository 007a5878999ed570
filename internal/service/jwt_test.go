package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret      = "test-secret-key-at-least-32-chars-long"
	testOtherSecret = "another-secret-key-with-32-bytes!!!!!!"
	testExpiry      = 24 * time.Hour
)

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewTokenService(t *testing.T) {
	service, err := NewTokenService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	if service == nil {
		t.Fatal("NewTokenService() returned nil service")
	}
	if got := service.Expiry(); got != testExpiry {
		t.Errorf("Expiry() = %v, want %v", got, testExpiry)
	}
}

func TestNewTokenService_SecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{name: "empty secret", secret: ""},
		{name: "short secret", secret: "short"},
		{name: "31 bytes", secret: strings.Repeat("a", 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTokenService(tt.secret, testExpiry); err == nil {
				t.Error("NewTokenService() should reject secrets under 32 bytes")
			}
		})
	}
}

// =============================================================================
// Generate Tests
// =============================================================================

func TestGenerate(t *testing.T) {
	service, _ := NewTokenService(testSecret, testExpiry)

	token, err := service.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Errorf("Generate() = %q, want three dot-separated segments", token)
	}
}

func TestGenerate_ClaimsRoundTrip(t *testing.T) {
	service, _ := NewTokenService(testSecret, testExpiry)

	before := time.Now()
	token, err := service.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := service.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}

	wantExpiry := before.Add(testExpiry)
	if claims.ExpiresAt.Time.Before(wantExpiry.Add(-5 * time.Second)) {
		t.Errorf("ExpiresAt = %v, too early for TTL %v", claims.ExpiresAt.Time, testExpiry)
	}
	if claims.IssuedAt == nil {
		t.Error("IssuedAt should be set")
	}
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate_Expired(t *testing.T) {
	service, _ := NewTokenService(testSecret, -time.Hour)

	token, err := service.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = service.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	signer, _ := NewTokenService(testOtherSecret, testExpiry)
	verifier, _ := NewTokenService(testSecret, testExpiry)

	token, err := signer.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = verifier.Validate(token)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Validate() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	service, _ := NewTokenService(testSecret, testExpiry)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "not-a-token"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "garbage segments", token: "aa!.bb!.cc!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Validate(tt.token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("Validate(%q) error = %v, want ErrTokenMalformed", tt.token, err)
			}
		})
	}
}

func TestValidate_TamperedPayload(t *testing.T) {
	service, _ := NewTokenService(testSecret, testExpiry)

	token, err := service.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Swap the payload for one claiming a different subject; the signature
	// no longer matches.
	other, _ := service.Generate(43)
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	if _, err := service.Validate(tampered); err == nil {
		t.Error("Validate() accepted a tampered token")
	}
}

func TestValidate_RejectsNonHMACAlgorithm(t *testing.T) {
	service, _ := NewTokenService(testSecret, testExpiry)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := service.Validate(token); err == nil {
		t.Error("Validate() accepted an unsigned token")
	}
}
