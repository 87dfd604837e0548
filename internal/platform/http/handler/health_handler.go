// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存先（DB、Redisなど）の疎通確認です。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// checkTimeout は1つのCheckに許す時間です。
const checkTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理するハンドラーを返します。
// checksのいずれかが失敗した場合は503を返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		failed := map[string]string{}
		for _, chk := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := chk.Ping(ctx)
			cancel()
			if err != nil {
				slog.Warn("health check failed", "check", chk.Name, "error", err)
				failed[chk.Name] = err.Error()
			}
		}

		status := http.StatusOK
		body := gin.H{"status": "ok"}
		if len(failed) > 0 {
			status = http.StatusServiceUnavailable
			body = gin.H{"status": "unavailable", "checks": failed}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	}
}
