package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// PostgreSQLとSQLiteのどちらのダイアレクトでも動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// FindByID はIDでユーザーを取得します。存在しない場合は (nil, nil) を返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToEntity()
}

// FindAll は作成日時の新しい順にすべてのユーザーを返します。
func (r *userGorm) FindAll(ctx context.Context) ([]*entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		u, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Save は未永続化のユーザーを追加し、永続化済みのユーザーを更新します。
// 更新はトランザクション内で読み込み→変更→書き戻しの順に行い、
// レコードが既に削除されている場合は usecase.ErrUserGone を返します。
func (r *userGorm) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	if !u.IsPersisted() {
		m := UserModelFromEntity(u)
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return nil, translateWriteError(err)
		}
		return m.ToEntity()
	}

	var m UserModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", u.ID()).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrUserGone
			}
			return err
		}
		m.apply(u.Snapshot())
		return tx.Save(&m).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return m.ToEntity()
}

// Delete はIDでユーザーを削除し、レコードが存在したかどうかを返します。
func (r *userGorm) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。存在しない場合は (nil, nil) を返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToEntity()
}
