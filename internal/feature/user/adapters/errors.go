// Package adapters はuserフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"user_backend/internal/feature/user/usecase"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// translateWriteError maps unique index violations from any supported driver to usecase.ErrDuplicateEmail.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrDuplicateEmail
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return usecase.ErrDuplicateEmail
	}
	return err
}
