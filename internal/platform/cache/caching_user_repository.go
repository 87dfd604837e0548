// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching.
// FindByID and FindAll are read through the cache; FindByEmail always reaches the
// underlying repository because the use case relies on it for uniqueness checks.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID retrieves a user, checking cache first then falling back to the database.
// Absent users are not cached.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var s entity.Snapshot
		if err := json.Unmarshal(b, &s); err == nil {
			if u, err := entity.FromSnapshot(s); err == nil {
				return u, nil
			}
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u.Snapshot()); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return u, nil
}

// FindAll retrieves all users, checking cache first then falling back to the database.
func (c *CachingUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.allKey()

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		if users, err := decodeUsers(b); err == nil {
			return users, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	users, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	snaps := make([]entity.Snapshot, 0, len(users))
	for _, u := range users {
		snaps = append(snaps, u.Snapshot())
	}
	if b, err := json.Marshal(snaps); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return users, nil
}

// Save stores the user and invalidates the affected cache entries.
func (c *CachingUserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	saved, err := c.inner.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	if c.rdb == nil {
		return saved, nil
	}

	keys := []string{c.allKey()}
	if u.IsPersisted() {
		keys = append([]string{c.idKey(u.ID())}, keys...)
	}
	_ = c.rdb.Del(ctx, keys...).Err() // Best effort: don't fail if cache deletion fails
	return saved, nil
}

// Delete removes the user and invalidates the affected cache entries.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := c.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.idKey(id), c.allKey()).Err()
	}
	return deleted, nil
}

// FindByEmail is never cached.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

func decodeUsers(b []byte) ([]*entity.User, error) {
	var snaps []entity.Snapshot
	if err := json.Unmarshal(b, &snaps); err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(snaps))
	for _, s := range snaps {
		u, err := entity.FromSnapshot(s)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// idKey generates the cache key of a single user.
func (c *CachingUserRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// allKey generates the cache key of the full listing.
func (c *CachingUserRepository) allKey() string {
	return c.namespace + ":all"
}
