package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLength is the minimum signing secret size in bytes. HS256 secrets
// shorter than the hash output weaken the MAC.
const minSecretLength = 32

var (
	// ErrTokenMalformed is returned for tokens that do not parse.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidSignature is returned when the signature does not verify
	// against the process signing secret.
	ErrInvalidSignature = errors.New("token signature invalid")
)

// Claims represents JWT token claims.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	Generate(userID int64) (string, error)
	Validate(tokenString string) (*Claims, error)
	Expiry() time.Duration
}

type tokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// Returns an error if the secret is shorter than 32 bytes.
func NewTokenService(secret string, expiry time.Duration) (TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	return &tokenService{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

func (s *tokenService) Generate(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and checks the token, returning its claims. Failures map
// to ErrTokenMalformed, ErrTokenExpired or ErrInvalidSignature; callers at
// the HTTP boundary must collapse these into one generic response.
func (s *tokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (s *tokenService) Expiry() time.Duration {
	return s.expiry
}
