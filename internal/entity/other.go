package entity

import "time"

// Banner is a promotional slot rendered by clients above the feed.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// Notification records an engagement aimed at a user's post, read back by the
// notifications endpoint.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ActorID   string    `json:"actor_id"`
	PostID    string    `json:"post_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
