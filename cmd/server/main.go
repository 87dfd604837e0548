package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"user_backend/internal/app/di"
	"user_backend/internal/app/router"
	userhandler "user_backend/internal/feature/user/transport/handler"
	userusecase "user_backend/internal/feature/user/usecase"
	"user_backend/internal/platform/cache"
	platformdb "user_backend/internal/platform/db"
	"user_backend/internal/platform/http/middleware"
	"user_backend/internal/platform/metrics"
	platformredis "user_backend/internal/platform/redis"
	"user_backend/internal/platform/validation"
)

const version = "1.0"

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logger := newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	dbCfg := platformdb.LoadConfigFromEnv()
	db, err := platformdb.OpenDB(dbCfg, 60*time.Second)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	var pool *pgxpool.Pool
	if dbCfg.Driver == platformdb.DriverPgx {
		pool, err = platformdb.NewPool(ctx, dbCfg)
		if err != nil {
			slog.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
	}

	// Redis
	var rdb *redisv9.Client
	if redisCfg := platformredis.LoadConfigFromEnv(); redisCfg.Enabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewAppMetrics(registry)

	// Repository → Usecase → Handler
	userRepo := di.NewUserRepository(dbCfg.Driver, db, pool, rdb, cache.ParseTTL(os.Getenv("CACHE_TTL")))
	userUC := userusecase.NewUserUsecase(userRepo)
	userH := userhandler.NewUserHandler(userUC, appMetrics)

	// ルータ生成
	validation.Init()
	r := router.NewRouter(router.Config{
		Users:          userH,
		Metrics:        appMetrics,
		Gatherer:       registry,
		HealthChecks:   di.NewHealthChecks(db, pool, rdb),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimiter:    middleware.NewPerMinuteLimiter(envInt("RATE_LIMIT_PER_MINUTE")),
		Logger:         logger,
		Name:           "User API",
		Version:        version,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port, "driver", dbCfg.Driver, "cache", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("server exited properly")
}

// newLogger はLOG_LEVEL（debug/info/warn/error）とLOG_FORMAT（json/text）からロガーを生成します。
func newLogger(level, format string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lv}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envInt は整数の環境変数を読み込みます。未設定・不正な値は0です。
func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}
