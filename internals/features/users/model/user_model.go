package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chapterhub_backend/internals/constants"
)

type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:ux_users_email" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:text" json:"-"` // empty for Google accounts
	UserFullName     string    `gorm:"column:user_full_name;type:varchar(255)" json:"user_full_name"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);default:member" json:"user_role"`
	UserIsActive     bool      `gorm:"column:user_is_active;default:true" json:"user_is_active"`
	UserGoogleID     *string   `gorm:"column:user_google_id;type:varchar(64)" json:"-"`
	UserCreatedAt    time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt    time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	if m.UserRole == "" {
		m.UserRole = constants.RoleMember
	}
	return nil
}
