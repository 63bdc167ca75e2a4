package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

const userCacheKeyPrefix = "user:username:"

// cachedUser is the Redis serialization of a credential record. The password
// hash must round-trip so that logins served from cache still verify.
type cachedUser struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"password_hash"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// cachedUserRepository is a read-through cache over username lookups. Records
// are immutable after registration, so cached entries can never go stale; the
// TTL only bounds memory. Cache failures degrade to the underlying store.
type cachedUserRepository struct {
	next   UserRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedUserRepository decorates a repository with a Redis lookup cache.
// A nil client returns the repository unchanged.
func NewCachedUserRepository(next UserRepository, client *redis.Client, ttl time.Duration) UserRepository {
	if client == nil {
		return next
	}
	return &cachedUserRepository{next: next, client: client, ttl: ttl}
}

func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	r.store(ctx, user)
	return nil
}

func (r *cachedUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if user, ok := r.lookup(ctx, username); ok {
		return user, nil
	}

	user, err := r.next.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if _, ok := r.lookup(ctx, username); ok {
		return true, nil
	}
	return r.next.ExistsByUsername(ctx, username)
}

func (r *cachedUserRepository) lookup(ctx context.Context, username string) (*domain.User, bool) {
	// both a missing key and a cache outage degrade to a store lookup
	raw, err := r.client.Get(ctx, userCacheKeyPrefix+username).Bytes()
	if err != nil {
		return nil, false
	}

	var cached cachedUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return &domain.User{
		ID:           cached.ID,
		Username:     cached.Username,
		PasswordHash: cached.PasswordHash,
		Role:         cached.Role,
		CreatedAt:    cached.CreatedAt,
	}, true
}

func (r *cachedUserRepository) store(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return
	}
	_ = r.client.Set(ctx, userCacheKeyPrefix+user.Username, raw, r.ttl).Err()
}
