package domain

import "time"

// User represents a registered listener who can upload and play songs.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	ProfileImage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
