package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
// Users are the identities behind every payer and share reference;
// an expense may only reference users that already exist.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique). Used for login.
	Email string

	// MobileNumber is the user's contact number.
	MobileNumber string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never included in API responses.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation timestamp.
func NewUser(name, email, mobileNumber, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		MobileNumber: mobileNumber,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
