package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BannerModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	LinkURL   string    `gorm:"type:varchar(500)" json:"link_url"`
	Position  int       `gorm:"default:0;index" json:"position"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BannerModel) TableName() string {
	return "banners"
}

func (b *BannerModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

type NotificationModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID   string    `gorm:"type:uuid;not null" json:"actor_id"`
	PostID    string    `gorm:"type:uuid;index" json:"post_id"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	Message   string    `gorm:"type:varchar(500)" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
