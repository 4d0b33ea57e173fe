package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/domain"
	"golang.org/x/oauth2"
)

const (
	authURL     = "https://accounts.google.com/o/oauth2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	userInfoTimeout = 8 * time.Second
)

// Errors returned by the provider.
var (
	ErrExchange = errors.New("google token exchange failed")
	ErrUserInfo = errors.New("google userinfo request failed")
)

// Provider implements auth.IdentityProvider against Google.
type Provider struct {
	oauth       *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// NewProvider builds a Provider from the auth configuration. A nil
// httpClient uses a client with the userinfo timeout.
func NewProvider(cfg config.AuthConfig, httpClient *http.Client) *Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: userInfoTimeout}
	}
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient:  httpClient,
		userInfoURL: userInfoURL,
	}
}

// AuthCodeURL returns the consent page URL. Offline access is requested so
// a refresh token is issued on first consent.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// Exchange trades an authorization code for tokens.
func (p *Provider) Exchange(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchange, err)
	}
	return &domain.OAuthTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}

type userInfoResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserInfo returns the Google account id and email for accessToken.
func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, userInfoTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserInfo, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserInfo, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", ErrUserInfo, resp.StatusCode)
	}

	var body userInfoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrUserInfo, err)
	}

	return &domain.Identity{Subject: body.ID, Email: body.Email}, nil
}
