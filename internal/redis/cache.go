package redis

import (
	"context"
	"encoding/json"
	"time"

	"account-service/internal/domain/user"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - users:all - short TTL, full user listing without password hashes

const usersListKey = "users:all"

// CacheConfig contains configuration for caching
type CacheConfig struct {
	UsersTTL time.Duration // TTL for the user listing (default 30s)
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		UsersTTL: 30 * time.Second,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

// UserCache represents cached user data. The password hash is never cached.
type UserCache struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	MiddleName     string    `json:"middle_name,omitempty"`
	LastName       string    `json:"last_name"`
	SecondLastName string    `json:"second_last_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toUserCache(u user.User) UserCache {
	return UserCache{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		SecondLastName: u.SecondLastName,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (c UserCache) toUser() user.User {
	return user.User{
		ID:             c.ID,
		Email:          c.Email,
		Name:           c.Name,
		MiddleName:     c.MiddleName,
		LastName:       c.LastName,
		SecondLastName: c.SecondLastName,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// GetUsers returns the cached listing. ok is false on a cache miss.
func (c *CacheStore) GetUsers(ctx context.Context) (users []user.User, ok bool, err error) {
	data, err := c.client.Get(ctx, usersListKey).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // Cache miss
	}
	if err != nil {
		return nil, false, err
	}

	var cached []UserCache
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, err
	}

	users = make([]user.User, len(cached))
	for i, u := range cached {
		users[i] = u.toUser()
	}
	return users, true, nil
}

// SetUsers stores the listing
func (c *CacheStore) SetUsers(ctx context.Context, users []user.User) error {
	cached := make([]UserCache, len(users))
	for i, u := range users {
		cached[i] = toUserCache(u)
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, usersListKey, data, c.config.UsersTTL).Err()
}

// InvalidateUsers removes the listing from cache
func (c *CacheStore) InvalidateUsers(ctx context.Context) error {
	return c.client.Del(ctx, usersListKey).Err()
}
