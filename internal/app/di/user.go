// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"user_backend/internal/feature/user/adapters"
	"user_backend/internal/feature/user/usecase"
	"user_backend/internal/platform/cache"
	platformdb "user_backend/internal/platform/db"
)

// NewUserRepository creates a UserRepository implementation.
// With the pgx driver and a pool it returns the raw SQL adapter, otherwise the GORM adapter.
// If Redis is available, reads go through the Redis cache.
func NewUserRepository(driver string, db *gorm.DB, pool *pgxpool.Pool, rdb *redis.Client, ttl time.Duration) usecase.UserRepository {
	var repo usecase.UserRepository
	if driver == platformdb.DriverPgx && pool != nil {
		repo = adapters.NewUserPgx(pool)
	} else {
		repo = adapters.NewUserGorm(db)
	}
	return cache.NewCachingUserRepository(rdb, ttl, repo, "users")
}
