package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/justic/justic-api/internal/api/shared"
	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/redact"
	"github.com/justic/justic-api/internal/service/auth"
)

// LoginFlow is the sign-in flow the auth endpoints drive.
type LoginFlow interface {
	BeginLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (string, error)
	RedeemSession(ctx context.Context, sid string) (string, error)
}

var _ LoginFlow = (*auth.LoginService)(nil)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	login      LoginFlow
	successURL string
	errorURL   string
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(login LoginFlow, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		login:      login,
		successURL: cfg.FrontendSuccessURL,
		errorURL:   cfg.FrontendErrorURL,
	}
}

// Login handles GET /auth/google/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	target, err := h.login.BeginLogin(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to begin login", "error", redact.Error(err))
		http.Redirect(w, r, withQuery(h.errorURL, "reason", auth.ReasonInternal), http.StatusFound)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Callback handles GET /auth/callback, redirecting to the frontend with a
// login session id or a failure reason.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sid, err := h.login.CompleteLogin(r.Context(), q.Get("code"), q.Get("state"))
	if err != nil {
		reason := auth.ReasonOf(err)
		logger.FromContext(r.Context()).Warn("login failed",
			"reason", reason,
			"error", redact.Error(err))
		http.Redirect(w, r, withQuery(h.errorURL, "reason", reason), http.StatusFound)
		return
	}
	http.Redirect(w, r, withQuery(h.successURL, "sid", sid), http.StatusFound)
}

// Session handles GET /auth/session?sid=, returning the access token once.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token, err := h.login.RedeemSession(r.Context(), r.URL.Query().Get("sid"))
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to redeem login session")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
