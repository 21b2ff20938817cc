package entity

import "time"

// Post is a car listing in the feed. ViewCount and LikeCount are derived from
// the engagement tables; IsLiked/IsSaved are filled for the requesting viewer
// on single-post and per-user reads.
type Post struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	CarName     string      `json:"car_name"`
	Description string      `json:"description"`
	City        string      `json:"city"`
	Year        int         `json:"year"`
	Price       int64       `json:"price"`
	ViewCount   int64       `json:"view_count"`
	LikeCount   int64       `json:"like_count"`
	IsLiked     bool        `json:"is_liked"`
	IsSaved     bool        `json:"is_saved"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Images      []PostImage `json:"images,omitempty"`
}

type PostImage struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ImageURL  string    `json:"image_url"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}
