package domain

import (
	"errors"
	"time"
)

// Common validation errors for User
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyGoogleID = errors.New("google ID cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
)

// User is an account created on first Google sign-in. Its ID is the owner
// identifier used as the storage prefix for the user's artifacts.
type User struct {
	ID        string    `json:"id"`
	GoogleID  string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}
	if u.GoogleID == "" {
		return ErrEmptyGoogleID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}

// OAuthTokens holds the provider tokens obtained at sign-in.
type OAuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Identity is the account information returned by the identity provider.
type Identity struct {
	// Subject is the provider's stable account identifier.
	Subject string
	Email   string
}
