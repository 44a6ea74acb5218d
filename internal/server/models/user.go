// Package models defines the persisted entities of the diary service.
package models

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext, and is excluded from JSON responses.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
