package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/usecase"
)

// Querier is the subset of *pgxpool.Pool used by userPgx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var userColumns = []string{"id", "name", "email", "favorite_food", "created_at", "updated_at"}

// userRow mirrors userColumns in order for pgx.RowToStructByPos.
type userRow struct {
	ID           int64
	Name         string
	Email        string
	FavoriteFood *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r userRow) toEntity() (*entity.User, error) {
	return entity.FromSnapshot(entity.Snapshot{
		ID:           uint(r.ID),
		Name:         r.Name,
		Email:        r.Email,
		FavoriteFood: r.FavoriteFood,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	})
}

// userPgx is a UserRepository backed by raw SQL over pgx, built with squirrel.
// It expects the users table created by the GORM migration.
type userPgx struct {
	db Querier
	qb sq.StatementBuilderType
}

var _ usecase.UserRepository = (*userPgx)(nil)

// NewUserPgx creates a userPgx on top of a pgx pool or connection.
func NewUserPgx(db Querier) *userPgx {
	return &userPgx{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *userPgx) selectUsers() sq.SelectBuilder {
	return r.qb.Select(userColumns...).From("users")
}

func (r *userPgx) insertUser(s entity.Snapshot) sq.InsertBuilder {
	return r.qb.Insert("users").
		Columns("name", "email", "favorite_food", "created_at", "updated_at").
		Values(s.Name, s.Email, s.FavoriteFood, s.CreatedAt, s.UpdatedAt).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))
}

func (r *userPgx) updateUser(s entity.Snapshot) sq.UpdateBuilder {
	return r.qb.Update("users").
		Set("name", s.Name).
		Set("email", s.Email).
		Set("favorite_food", s.FavoriteFood).
		Set("updated_at", s.UpdatedAt).
		Where(sq.Eq{"id": s.ID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))
}

func (r *userPgx) deleteUser(id uint) sq.DeleteBuilder {
	return r.qb.Delete("users").Where(sq.Eq{"id": id})
}

// queryOne runs q and returns the single resulting user, or nil when no row matched.
func (r *userPgx) queryOne(ctx context.Context, q sq.Sqlizer) (*entity.User, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toEntity()
}

// FindByID returns the user with the given ID, or nil when none exists.
func (r *userPgx) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.queryOne(ctx, r.selectUsers().Where(sq.Eq{"id": id}).Limit(1))
}

// FindAll returns every user, newest first.
func (r *userPgx) FindAll(ctx context.Context) ([]*entity.User, error) {
	query, args, err := r.selectUsers().OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[userRow])
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(collected))
	for _, row := range collected {
		u, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Save inserts a transient user or writes back a persisted one.
// The update matches on ID; when no row matches the record was removed and ErrUserGone is returned.
func (r *userPgx) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	s := u.Snapshot()
	if !u.IsPersisted() {
		saved, err := r.queryOne(ctx, r.insertUser(s))
		if err != nil {
			return nil, translateWriteError(err)
		}
		return saved, nil
	}

	saved, err := r.queryOne(ctx, r.updateUser(s))
	if err != nil {
		return nil, translateWriteError(err)
	}
	if saved == nil {
		return nil, usecase.ErrUserGone
	}
	return saved, nil
}

// Delete removes the user with the given ID and reports whether a row was deleted.
func (r *userPgx) Delete(ctx context.Context, id uint) (bool, error) {
	query, args, err := r.deleteUser(id).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FindByEmail returns the user with the given address, or nil when none exists.
func (r *userPgx) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.queryOne(ctx, r.selectUsers().Where(sq.Eq{"email": email}).Limit(1))
}
