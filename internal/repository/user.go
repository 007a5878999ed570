// Package repository provides data access layer for the account service.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/portfolio-platform/account-service/internal/models"
	"gorm.io/gorm"
)

// PerPage is the fixed page size for user listings.
const PerPage = 10

var (
	// ErrDuplicateEmail is returned when creating or updating a user with
	// an email that is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNotFound is returned when no user matches the given key.
	ErrNotFound = errors.New("user not found")
)

// UserPage is one page of a user listing.
type UserPage struct {
	Users []models.User
	Total int64
	Pages int64
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, page int) (*UserPage, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance backed by gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. Email uniqueness is enforced by the unique index
// on the users table, so concurrent creates with the same email cannot both
// succeed; the loser gets ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update user id %d: %w", user.ID, err)
	}
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(user).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status for user %d: %w", id, err)
	}
	user.Status = status
	return user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last_login for user %d: %w", id, err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, page int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * PerPage).
		Limit(PerPage).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserPage{
		Users: users,
		Total: total,
		Pages: (total + PerPage - 1) / PerPage,
	}, nil
}
