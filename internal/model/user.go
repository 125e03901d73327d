// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered marketplace account.
// PasswordHash is an argon2id PHC string and is never serialized.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullAddress  string    `json:"full_address"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
