//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUserStore_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{URL: url}, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, Migrate(ctx, db, nil))

	s := NewPostgresUserStore(db, nil)
	googleID := "it-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DELETE FROM oauth_users WHERE google_id = $1", googleID)
	})

	first, err := s.FindOrCreateByGoogleID(ctx, &domain.User{
		ID:        uuid.New().String(),
		GoogleID:  googleID,
		Email:     "it@example.com",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	second, err := s.FindOrCreateByGoogleID(ctx, &domain.User{
		ID:        uuid.New().String(),
		GoogleID:  googleID,
		Email:     "it@example.com",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, googleID, got.GoogleID)

	require.NoError(t, s.SaveTokens(ctx, first.ID, domain.OAuthTokens{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, s.SaveTokens(ctx, first.ID, domain.OAuthTokens{AccessToken: "a2"}))

	var access, refresh string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT access_token, refresh_token FROM oauth_tokens WHERE user_id = $1", first.ID).
		Scan(&access, &refresh))
	assert.Equal(t, "a2", access)
	assert.Equal(t, "r1", refresh)
}
