package store

import (
	"context"

	"github.com/justic/justic-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindOrCreateByGoogleID returns the user with candidate's Google ID.
	// If there is none, candidate is validated and inserted.
	// Returns ErrInvalidEntity wrapping the validation error for invalid data.
	FindOrCreateByGoogleID(ctx context.Context, candidate *domain.User) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// SaveTokens inserts or replaces the user's OAuth tokens. A blank refresh
	// token keeps the previously stored one, since Google only returns it on
	// first consent.
	SaveTokens(ctx context.Context, userID string, tokens domain.OAuthTokens) error
}
