// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents an account that owns daily counters.
// It carries the login credentials; the password is always a bcrypt hash.
type User struct {
	// ID is the unique identifier for the user. After login it doubles as
	// the bearer identity carried in the x-user-id header.
	ID uint `gorm:"primaryKey"`

	// Email is the login key. Matching is case-sensitive and the column is
	// unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext is never stored and the hash is never returned to clients.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
