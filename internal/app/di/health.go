package di

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"user_backend/internal/platform/http/handler"
)

// NewHealthChecks builds /healthz checks for every configured backend. nil backends are skipped.
func NewHealthChecks(db *gorm.DB, pool *pgxpool.Pool, rdb *redis.Client) []handler.Check {
	var checks []handler.Check
	if db != nil {
		checks = append(checks, handler.Check{Name: "database", Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}})
	}
	if pool != nil {
		checks = append(checks, handler.Check{Name: "pgx", Ping: pool.Ping})
	}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return checks
}
