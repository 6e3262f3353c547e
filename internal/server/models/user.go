package models

import "time"

// User is an account allowed to sign in to the admin API. Role gates
// access to mutating routes.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
