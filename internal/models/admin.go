package models

import "time"

// Admin is an administrator account. The plaintext password is never kept.
type Admin struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
