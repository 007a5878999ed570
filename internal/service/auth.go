package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/portfolio-platform/account-service/internal/models"
	"github.com/portfolio-platform/account-service/internal/repository"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrEmailTaken   = errors.New("email exists")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidStatus      = errors.New("invalid status")
)

// AuthResponse is returned on successful signup or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ProfilePatch enumerates the profile fields a user may change. Nil fields
// are left untouched.
type ProfilePatch struct {
	FullName *string
	Email    *string
	Password *string
}

// AuthService implements signup, login and account management on top of the
// credential store, the password hasher and the token service.
type AuthService interface {
	Signup(ctx context.Context, fullName, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (*models.User, error)
	ListUsers(ctx context.Context, page int) (*repository.UserPage, error)
	SetUserStatus(ctx context.Context, id int64, status models.Status) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenService
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// normalizeEmail fixes the email case policy: addresses are compared, stored
// and looked up trimmed and lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validatePassword(password string) bool {
	return len(password) >= minPasswordLength
}

func (s *authService) Signup(ctx context.Context, fullName, email, password string) (*AuthResponse, error) {
	email = normalizeEmail(email)
	if !validateEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validatePassword(password) {
		return nil, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}

	// The store's unique constraint decides duplicate races, not a prior
	// read.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Checked only after the credential match so the inactive response
	// cannot be used to probe passwords.
	if user.Status == models.StatusInactive {
		return nil, ErrAccountInactive
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if !validateEmail(email) {
			return nil, ErrInvalidEmail
		}
		user.Email = email
	}
	if patch.Password != nil && *patch.Password != "" {
		if !validatePassword(*patch.Password) {
			return nil, ErrWeakPassword
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, page int) (*repository.UserPage, error) {
	return s.users.List(ctx, page)
}

func (s *authService) SetUserStatus(ctx context.Context, id int64, status models.Status) (*models.User, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	user, err := s.users.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
