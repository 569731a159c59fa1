// Package models defines server-side data models persisted in the database.
package models

// User is an account. PasswordHash never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	UserName     string `json:"username"`
	PasswordHash string `json:"-"`
}
