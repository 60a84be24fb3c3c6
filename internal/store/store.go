// ABOUTME: Storage interface and data types for user credential persistence
// ABOUTME: Defines the User struct and the Storage interface backends implement

package store

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when a requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when registering a username that is taken.
var ErrUserExists = errors.New("user already exists")

// ErrWrongPassword is returned when a credential check fails.
var ErrWrongPassword = errors.New("wrong password")

// User represents a registered account with a server-side credential.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// Storage defines the credential backend consumed by the login,
// register, and change-password flows. Implementations own hashing;
// callers pass plaintext candidates.
type Storage interface {
	// RegisterUser creates a new user with the given password.
	RegisterUser(ctx context.Context, username, password string) error

	// ValidateUser checks a username/password pair. Returns
	// ErrUserNotFound or ErrWrongPassword on failure.
	ValidateUser(ctx context.Context, username, password string) error

	// ChangePassword replaces the stored credential for username.
	ChangePassword(ctx context.Context, username, newPassword string) error

	// HasUser reports whether a username is registered.
	HasUser(ctx context.Context, username string) (bool, error)

	// Close releases backend resources.
	Close() error
}
