// Package router はHTTPルーティングとグローバルミドルウェアを構成します。
package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	userhandler "user_backend/internal/feature/user/transport/handler"
	"user_backend/internal/platform/http/handler"
	"user_backend/internal/platform/http/middleware"
	"user_backend/internal/platform/metrics"
	"user_backend/internal/shared/ratelimiter"
)

// Config はルーター生成に必要な依存をまとめます。
type Config struct {
	Users          *userhandler.UserHandler
	Metrics        *metrics.AppMetrics
	Gatherer       prometheus.Gatherer
	HealthChecks   []handler.Check
	AllowedOrigins []string
	// RateLimiter はnilの場合無効です。/api/v1 配下のみに適用します。
	RateLimiter    *ratelimiter.RateLimiter
	Logger         *slog.Logger
	Name           string
	Version        string
}

// NewRouter はルートとミドルウェアを登録したgin.Engineを返します。
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	}

	// 導通確認用
	health := handler.Health(cfg.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// APIルート（エンドポイント一覧）
	r.GET("/", handler.Root(cfg.Name, cfg.Version))

	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Gatherer)))
	}

	users := r.Group("/api/v1/users")
	if cfg.RateLimiter != nil {
		users.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	{
		users.GET("", cfg.Users.List)
		users.POST("", cfg.Users.Create)
		users.GET("/:id", cfg.Users.Get)
		users.PUT("/:id", cfg.Users.Update)
		users.PATCH("/:id", cfg.Users.Update)
		users.DELETE("/:id", cfg.Users.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
