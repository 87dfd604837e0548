package adapters

import (
	"time"

	"user_backend/internal/feature/user/domain/entity"
)

// UserModel is the GORM model for the users table.
// Timestamps are owned by the entity, so GORM's automatic time tracking is disabled.
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	FavoriteFood *string   `gorm:"size:100"`
	CreatedAt    time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() (*entity.User, error) {
	return entity.FromSnapshot(entity.Snapshot{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		FavoriteFood: m.FavoriteFood,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	m := &UserModel{}
	m.apply(u.Snapshot())
	return m
}

// apply copies the business fields of s onto m. CreatedAt is only set on a fresh model.
func (m *UserModel) apply(s entity.Snapshot) {
	m.ID = s.ID
	m.Name = s.Name
	m.Email = s.Email
	m.FavoriteFood = s.FavoriteFood
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.CreatedAt
	}
	m.UpdatedAt = s.UpdatedAt
}
