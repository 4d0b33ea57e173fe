package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/store"
)

// PostgresUserStore implements store.UserStore on the oauth_users and
// oauth_tokens tables.
type PostgresUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db *sql.DB, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With("component", "user_store"),
	}
}

const (
	selectUserByGoogleID = `SELECT user_id, google_id, email, created_at FROM oauth_users WHERE google_id = $1`
	selectUserByID       = `SELECT user_id, google_id, email, created_at FROM oauth_users WHERE user_id = $1`

	// ON CONFLICT DO NOTHING returns no row when a concurrent sign-in won
	// the insert; the caller then re-reads.
	insertUser = `INSERT INTO oauth_users (user_id, google_id, email, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (google_id) DO NOTHING
		RETURNING user_id, google_id, email, created_at`

	upsertTokens = `INSERT INTO oauth_tokens (user_id, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			access_token  = EXCLUDED.access_token,
			expires_at    = EXCLUDED.expires_at,
			refresh_token = COALESCE(EXCLUDED.refresh_token, oauth_tokens.refresh_token),
			updated_at    = NOW()`
)

// queryUser runs a single-row user query on a connection or transaction.
func queryUser(ctx context.Context, q store.DBTX, query string, args ...any) (*domain.User, error) {
	var u domain.User
	if err := q.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.GoogleID, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrCreateByGoogleID implements store.UserStore.FindOrCreateByGoogleID
func (s *PostgresUserStore) FindOrCreateByGoogleID(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		existing, err := queryUser(ctx, tx, selectUserByGoogleID, candidate.GoogleID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return MapError(err)
		}

		created, err := queryUser(ctx, tx, insertUser,
			candidate.ID, candidate.GoogleID, candidate.Email, candidate.CreatedAt)
		if err == nil {
			log.Info("user created", "user_id", created.ID)
			user = created
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return MapError(err)
		}

		existing, err = queryUser(ctx, tx, selectUserByGoogleID, candidate.GoogleID)
		if err != nil {
			return MapError(err)
		}
		user = existing
		return nil
	})
	if err != nil {
		return nil, store.NewStoreError("user", "find_or_create", "failed to load or create user", err)
	}

	return user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := queryUser(ctx, s.db, selectUserByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "failed to read user", MapError(err))
	}
	return user, nil
}

// SaveTokens implements store.UserStore.SaveTokens
func (s *PostgresUserStore) SaveTokens(ctx context.Context, userID string, tokens domain.OAuthTokens) error {
	var refresh sql.NullString
	if tokens.RefreshToken != "" {
		refresh = sql.NullString{String: tokens.RefreshToken, Valid: true}
	}
	var expires sql.NullTime
	if !tokens.ExpiresAt.IsZero() {
		expires = sql.NullTime{Time: tokens.ExpiresAt, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, upsertTokens, userID, tokens.AccessToken, refresh, expires); err != nil {
		return store.NewStoreError("oauth_tokens", "upsert", "failed to save tokens", MapError(err))
	}
	return nil
}
