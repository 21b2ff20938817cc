package entity

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	City      string    `json:"city"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
