// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Authentication is plain username/password: the user picks a username at
// registration, we store a bcrypt hash of the password, and the username is
// UNIQUE in the database.
//
// WHY IS PasswordHash TAGGED json:"-"?
// The hash must never leave the server. The `json:"-"` tag tells
// encoding/json to skip the field entirely, so even if a handler marshals a
// whole User by accident, the hash is not in the response.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
