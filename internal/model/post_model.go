package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deletes are hard deletes across the schema: removing a post or user must be
// irreversible and must never leave engagement rows that could resurrect.

type PostModel struct {
	ID          string           `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     string           `gorm:"type:uuid;not null;index" json:"owner_id"`
	CarName     string           `gorm:"type:varchar(255);not null;index" json:"car_name"`
	Description string           `gorm:"type:text" json:"description"`
	City        string           `gorm:"type:varchar(100);index" json:"city"`
	Year        int              `gorm:"default:0" json:"year"`
	Price       int64            `gorm:"default:0" json:"price"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Images      []PostImageModel `gorm:"foreignKey:PostID" json:"images,omitempty"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostImageModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Position  int       `gorm:"default:0;index" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostImageModel) TableName() string {
	return "post_images"
}

func (pi *PostImageModel) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
