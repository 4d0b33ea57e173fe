package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrSessionNotFound indicates a login session is unknown, expired or
	// already redeemed
	ErrSessionNotFound = errors.New("login session not found")
)

// Login failure reasons, reported to the frontend error page.
const (
	ReasonMissingParam  = "missing_param"
	ReasonInvalidState  = "invalid_state"
	ReasonTokenFail     = "token_fail"
	ReasonNoAccessToken = "no_access_token"
	ReasonUserinfoFail  = "userinfo_fail"
	ReasonNoUser        = "no_user"
	ReasonInternal      = "internal"
)

// LoginError describes why a sign-in attempt failed.
type LoginError struct {
	// Reason is one of the Reason* constants.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface for LoginError.
func (e *LoginError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("login failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("login failed (%s)", e.Reason)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LoginError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the login failure reason carried by err, or
// ReasonInternal when err is not a LoginError.
func ReasonOf(err error) string {
	var le *LoginError
	if errors.As(err, &le) {
		return le.Reason
	}
	return ReasonInternal
}
