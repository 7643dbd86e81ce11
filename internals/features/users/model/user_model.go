package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the `users` table.
type UserModel struct {
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`

	UserEmail    string `json:"user_email" gorm:"column:user_email;type:varchar(120);not null;uniqueIndex"`
	UserPassword string `json:"-" gorm:"column:user_password;type:varchar(100);not null"`
	UserFullName string `json:"user_full_name" gorm:"column:user_full_name;type:varchar(120);not null"`

	// One of STUDENT / LECTURER / ADMIN / HEAD_DEPARTMENT / STAFF. Immutable.
	UserRole   string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:'STUDENT'"`
	UserActive bool   `json:"user_active" gorm:"column:user_active;not null;default:true"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
