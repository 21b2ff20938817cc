package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"type:varchar(100);not null;index" json:"username"`
	City      string    `gorm:"type:varchar(100);index" json:"city"`
	AvatarURL string    `gorm:"type:varchar(500)" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
