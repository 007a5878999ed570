package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/portfolio-platform/account-service/internal/models"
	"github.com/redis/go-redis/v9"
)

// userCacheTTL bounds how long a cached record may lag behind the database.
const userCacheTTL = 30 * time.Second

type cachedUserRepository struct {
	UserRepository
	redis *redis.Client
}

// NewCachedUserRepository wraps repo with a Redis read-through cache for
// FindByID. Every write path drops the cached record, so lookups after an
// update see fresh data; unrelated instances converge within userCacheTTL.
func NewCachedUserRepository(repo UserRepository, redisClient *redis.Client) UserRepository {
	return &cachedUserRepository{UserRepository: repo, redis: redisClient}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// cachedUser re-exposes the password hash, which the model hides from JSON,
// so a cache hit can still serve credential checks.
type cachedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func (r *cachedUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if data, err := r.redis.Get(ctx, userKey(id)).Bytes(); err == nil {
		var entry cachedUser
		if err := json.Unmarshal(data, &entry); err == nil {
			user := entry.User
			user.PasswordHash = entry.PasswordHash
			return &user, nil
		}
	}

	user, err := r.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := cachedUser{User: *user, PasswordHash: user.PasswordHash}
	if data, err := json.Marshal(entry); err == nil {
		// Best effort; a failed cache write only costs a DB read later.
		r.redis.Set(ctx, userKey(id), data, userCacheTTL)
	}
	return user, nil
}

func (r *cachedUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.UserRepository.Update(ctx, user); err != nil {
		return err
	}
	r.redis.Del(ctx, userKey(user.ID))
	return nil
}

func (r *cachedUserRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.User, error) {
	user, err := r.UserRepository.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	r.redis.Del(ctx, userKey(id))
	return user, nil
}

func (r *cachedUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if err := r.UserRepository.TouchLastLogin(ctx, id, at); err != nil {
		return err
	}
	r.redis.Del(ctx, userKey(id))
	return nil
}
