package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootResponse は / が返す利用可能なエンドポイント一覧です。
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root はAPIルート（サービス名、バージョン、エンドポイント一覧）を返すハンドラーを生成します。
func Root(name, version string) gin.HandlerFunc {
	resp := RootResponse{
		Message: name,
		Version: version,
		Endpoints: map[string]string{
			"health":      "/healthz",
			"metrics":     "/metrics",
			"users_list":  "/api/v1/users",
			"user_detail": "/api/v1/users/{id}",
		},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
