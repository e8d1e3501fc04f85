package models

import "time"

// Profile is the public part of a user account.
type Profile struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	Email     *string   `json:"email"`
}

// DirectoryUser is one entry of the user directory used to add existing users
// to a campaign.
type DirectoryUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}
