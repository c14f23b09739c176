// Package models defines server-side records persisted in PostgreSQL.
package models

import "time"

type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
