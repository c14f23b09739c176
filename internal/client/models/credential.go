package models

import "time"

// Credential is the local copy of a signed-up account, used for offline
// login. The password itself is never stored.
type Credential struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}

// UserProfile is what the server reports about the logged-in user.
type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
