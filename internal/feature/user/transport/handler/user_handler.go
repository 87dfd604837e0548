// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/transport/http/dto"
	"user_backend/internal/feature/user/usecase"
	"user_backend/internal/platform/http/middleware"
	"user_backend/internal/platform/validation"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）側で定義します。
type UserUsecase interface {
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]*entity.User, error)
	UpdateUser(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

var _ UserUsecase = (*usecase.UserUsecase)(nil)

// OperationRecorder は操作結果を記録します（メトリクス用）。
type OperationRecorder interface {
	RecordUserOperation(ctx context.Context, operation, outcome string)
}

// UserHandler はユーザーリソースのHTTPリクエストを処理します。
type UserHandler struct {
	uc  UserUsecase
	rec OperationRecorder
}

// NewUserHandler はUserHandlerを生成します。recはnilでも構いません。
func NewUserHandler(uc UserUsecase, rec OperationRecorder) *UserHandler {
	return &UserHandler{uc: uc, rec: rec}
}

// List は全ユーザーを新しい順に返します。
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.GetAllUsers(c.Request.Context())
	h.record(c, "list", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// Create はユーザーを作成します。
// - バインド/バリデーションエラー時は400
// - メール重複時は409
// - 成功時は201と作成されたユーザー
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		FavoriteFood: req.FavoriteFood,
	})
	h.record(c, "create", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	slog.Info("user created", "user_id", u.ID(), "request_id", middleware.GetRequestID(c))
	c.JSON(http.StatusCreated, dto.NewUserResponse(u))
}

// Get はIDで指定したユーザーを返します。
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	u, err := h.uc.GetUser(c.Request.Context(), id)
	h.record(c, "get", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// Update はユーザーを部分更新します。PUTとPATCHの両方で使用します。
// 省略されたフィールドは変更しません。
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		FavoriteFood: req.FavoriteFood,
	})
	h.record(c, "update", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// Delete はユーザーを削除し、204を返します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	err := h.uc.DeleteUser(c.Request.Context(), id)
	h.record(c, "delete", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	slog.Info("user deleted", "user_id", id, "request_id", middleware.GetRequestID(c))
	c.Status(http.StatusNoContent)
}

// bindID はパスパラメータ :id を正の整数として取り出します。失敗時は400を書き込みます。
func (h *UserHandler) bindID(c *gin.Context) (uint, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid user id",
			Type:    "ValidationError",
			Details: map[string]string{"id": "must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

func (h *UserHandler) respondBindError(c *gin.Context, err error) {
	slog.Warn("request validation failed", "error", err, "request_id", middleware.GetRequestID(c))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "invalid request",
		Type:    "ValidationError",
		Details: validation.ToDetails(err),
	})
}

// respondError はドメインエラーをHTTPステータスに変換して書き込みます。
func (h *UserHandler) respondError(c *gin.Context, err error) {
	typ := domain.TypeName(err)

	var status int
	switch typ {
	case "ValidationError":
		status = http.StatusBadRequest
	case "NotFoundError":
		status = http.StatusNotFound
	case "ConflictError":
		status = http.StatusConflict
	default:
		// 内部エラーの詳細は公開しない
		slog.Error("user operation failed", "error", err, "request_id", middleware.GetRequestID(c))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Type: typ})
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Type: typ})
}

func (h *UserHandler) record(c *gin.Context, operation string, err error) {
	if h.rec == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = domain.TypeName(err)
	}
	h.rec.RecordUserOperation(c.Request.Context(), operation, outcome)
}
