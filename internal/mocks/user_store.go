package mocks

import (
	"context"
	"sync"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/store"
)

// MockUserStore implements store.UserStore in memory for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	FindOrCreateFn func(ctx context.Context, candidate *domain.User) (*domain.User, error)
	SaveTokensFn   func(ctx context.Context, userID string, tokens domain.OAuthTokens) error

	mu sync.Mutex
	// Users is keyed by Google ID.
	Users  map[string]*domain.User
	Tokens map[string]domain.OAuthTokens
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:  make(map[string]*domain.User),
		Tokens: make(map[string]domain.OAuthTokens),
	}
}

// FindOrCreateByGoogleID implements the UserStore interface
func (m *MockUserStore) FindOrCreateByGoogleID(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	if m.FindOrCreateFn != nil {
		return m.FindOrCreateFn(ctx, candidate)
	}
	if err := candidate.Validate(); err != nil {
		return nil, store.ErrInvalidEntity
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[candidate.GoogleID]; ok {
		cp := *u
		return &cp, nil
	}
	cp := *candidate
	m.Users[candidate.GoogleID] = &cp
	out := cp
	return &out, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// SaveTokens implements the UserStore interface. A blank refresh token keeps
// the stored one.
func (m *MockUserStore) SaveTokens(ctx context.Context, userID string, tokens domain.OAuthTokens) error {
	if m.SaveTokensFn != nil {
		return m.SaveTokensFn(ctx, userID, tokens)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = m.Tokens[userID].RefreshToken
	}
	m.Tokens[userID] = tokens
	return nil
}
