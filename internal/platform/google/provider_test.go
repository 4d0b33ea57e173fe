package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/justic/justic-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURI:  "https://api.example.com/auth/google/callback",
	}
}

// newTestProvider points the provider at srv for both token and userinfo.
func newTestProvider(srv *httptest.Server) *Provider {
	p := NewProvider(testConfig(), srv.Client())
	p.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestAuthCodeURL(t *testing.T) {
	p := NewProvider(testConfig(), nil)

	raw := p.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "select_account", q.Get("prompt"))
	assert.Equal(t, "https://api.example.com/auth/google/callback", q.Get("redirect_uri"))
}

func TestExchange(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantAccess  string
		wantRefresh string
	}{
		{
			name:        "success",
			status:      http.StatusOK,
			body:        `{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`,
			wantAccess:  "at",
			wantRefresh: "rt",
		},
		{
			name:       "no refresh token",
			status:     http.StatusOK,
			body:       `{"access_token":"at","token_type":"Bearer","expires_in":3600}`,
			wantAccess: "at",
		},
		{
			name:    "rejected code",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid_grant"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/token", r.URL.Path)
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "the-code", r.PostForm.Get("code"))
				assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
				assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tokens, err := newTestProvider(srv).Exchange(context.Background(), "the-code")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrExchange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, tokens.AccessToken)
			assert.Equal(t, tt.wantRefresh, tokens.RefreshToken)
			assert.False(t, tokens.ExpiresAt.IsZero())
		})
	}
}

func TestUserInfo(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		wantSub string
	}{
		{"success", http.StatusOK, `{"id":"1234","email":"a@example.com","verified_email":true}`, false, "1234"},
		{"unauthorized", http.StatusUnauthorized, `{}`, true, ""},
		{"malformed", http.StatusOK, `{not json`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			ident, err := newTestProvider(srv).UserInfo(context.Background(), "at")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUserInfo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, ident.Subject)
			assert.Equal(t, "a@example.com", ident.Email)
		})
	}
}
