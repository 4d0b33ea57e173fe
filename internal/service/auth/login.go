package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/redact"
)

// IdentityProvider performs the OAuth authorization-code flow.
type IdentityProvider interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for provider tokens.
	Exchange(ctx context.Context, code string) (*domain.OAuthTokens, error)
	// UserInfo fetches the account behind an access token.
	UserInfo(ctx context.Context, accessToken string) (*domain.Identity, error)
}

// StateStore keeps single-use OAuth state values.
type StateStore interface {
	SaveState(ctx context.Context, state string, ttl time.Duration) error
	// ConsumeState deletes state and reports whether it existed.
	ConsumeState(ctx context.Context, state string) (bool, error)
}

// SessionStore keeps single-use login sessions holding an issued token.
type SessionStore interface {
	SaveSession(ctx context.Context, sid, token string, ttl time.Duration) error
	// ConsumeSession returns and deletes the token stored under sid, or
	// ErrSessionNotFound.
	ConsumeSession(ctx context.Context, sid string) (string, error)
}

// UserStore persists accounts and their provider tokens.
type UserStore interface {
	// FindOrCreateByGoogleID returns the user with candidate's Google ID,
	// inserting candidate if there is none.
	FindOrCreateByGoogleID(ctx context.Context, candidate *domain.User) (*domain.User, error)
	// SaveTokens upserts the user's provider tokens. An empty refresh token
	// keeps the stored one.
	SaveTokens(ctx context.Context, userID string, tokens domain.OAuthTokens) error
}

// LoginService drives Google sign-in and the one-time session handoff to
// the frontend.
type LoginService struct {
	idp        IdentityProvider
	states     StateStore
	sessions   SessionStore
	users      UserStore
	jwt        JWTService
	stateTTL   time.Duration
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewLoginService creates a LoginService.
func NewLoginService(
	idp IdentityProvider,
	states StateStore,
	sessions SessionStore,
	users UserStore,
	jwtService JWTService,
	stateTTL, sessionTTL time.Duration,
	logger *slog.Logger,
) (*LoginService, error) {
	if idp == nil || states == nil || sessions == nil || users == nil || jwtService == nil {
		return nil, errors.New("login service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		idp:        idp,
		states:     states,
		sessions:   sessions,
		users:      users,
		jwt:        jwtService,
		stateTTL:   stateTTL,
		sessionTTL: sessionTTL,
		logger:     logger.With("component", "login_service"),
	}, nil
}

// BeginLogin stores a fresh state value and returns the consent page URL.
func (s *LoginService) BeginLogin(ctx context.Context) (string, error) {
	state, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := s.states.SaveState(ctx, state, s.stateTTL); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}
	return s.idp.AuthCodeURL(state), nil
}

// CompleteLogin handles the provider redirect. On success it returns the id
// of a login session holding a freshly issued access token. Failures are
// *LoginError values.
func (s *LoginService) CompleteLogin(ctx context.Context, code, state string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if code == "" || state == "" {
		return "", &LoginError{Reason: ReasonMissingParam}
	}

	ok, err := s.states.ConsumeState(ctx, state)
	if err != nil {
		return "", &LoginError{Reason: ReasonInternal, Err: err}
	}
	if !ok {
		return "", &LoginError{Reason: ReasonInvalidState}
	}

	tokens, err := s.idp.Exchange(ctx, code)
	if err != nil {
		log.Warn("oauth code exchange failed", "error", redact.Error(err))
		return "", &LoginError{Reason: ReasonTokenFail, Err: err}
	}
	if tokens == nil || tokens.AccessToken == "" {
		return "", &LoginError{Reason: ReasonNoAccessToken}
	}

	ident, err := s.idp.UserInfo(ctx, tokens.AccessToken)
	if err != nil {
		log.Warn("userinfo request failed", "error", redact.Error(err))
		return "", &LoginError{Reason: ReasonUserinfoFail, Err: err}
	}
	if ident == nil || ident.Subject == "" || ident.Email == "" {
		return "", &LoginError{Reason: ReasonNoUser}
	}

	user, err := s.users.FindOrCreateByGoogleID(ctx, &domain.User{
		ID:        newUserID(),
		GoogleID:  ident.Subject,
		Email:     ident.Email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error("failed to load or create user", "error", err)
		return "", &LoginError{Reason: ReasonInternal, Err: err}
	}

	if err := s.users.SaveTokens(ctx, user.ID, *tokens); err != nil {
		log.Error("failed to save oauth tokens", "error", redact.Error(err), "user_id", user.ID)
		return "", &LoginError{Reason: ReasonInternal, Err: err}
	}

	accessToken, err := s.jwt.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return "", &LoginError{Reason: ReasonInternal, Err: err}
	}

	sid, err := randomToken()
	if err != nil {
		return "", &LoginError{Reason: ReasonInternal, Err: err}
	}
	if err := s.sessions.SaveSession(ctx, sid, accessToken, s.sessionTTL); err != nil {
		return "", &LoginError{Reason: ReasonInternal, Err: err}
	}

	log.Info("user signed in", "user_id", user.ID)
	return sid, nil
}

// RedeemSession returns the access token of a login session exactly once.
func (s *LoginService) RedeemSession(ctx context.Context, sid string) (string, error) {
	if sid == "" {
		return "", ErrSessionNotFound
	}
	token, err := s.sessions.ConsumeSession(ctx, sid)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to redeem login session: %w", err)
	}
	return token, nil
}

// randomToken returns 128 bits of URL-safe randomness.
func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// newUserID returns 32 hex characters, usable as a storage path segment.
func newUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
