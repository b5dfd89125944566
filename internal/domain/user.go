package domain

import "time"

// User represents a persisted user record. The password hash never leaves the
// server: it is excluded from JSON and only ever compared through bcrypt.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
