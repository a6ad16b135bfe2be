package users

import "time"

type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ProfilePicURL string    `json:"profile_pic_url"`
	UUID          string    `json:"uuid"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
