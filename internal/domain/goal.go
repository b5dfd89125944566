package domain

import "time"

// Goal is a single goal record. The owner is fixed at creation and never
// transferred; timestamps are assigned by the store layer.
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"goal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
