package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Engagement relations are join tables with a unique (actor, target) index so
// concurrent duplicate toggles cannot double-apply.

type LikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type SaveModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_save_user_post" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_save_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SaveModel) TableName() string {
	return "saves"
}

func (s *SaveModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type PostViewModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_user_post" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostViewModel) TableName() string {
	return "post_views"
}

func (v *PostViewModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

type UserViewModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ViewerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_viewer_viewed" json:"viewer_id"`
	ViewedID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_viewer_viewed;index" json:"viewed_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserViewModel) TableName() string {
	return "user_views"
}

func (v *UserViewModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
