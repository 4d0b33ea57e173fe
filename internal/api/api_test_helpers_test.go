package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/justic/justic-api/internal/api/shared"
)

// newOwnerRequest builds a request as the auth middleware would leave it,
// with chi URL params set.
func newOwnerRequest(method, target, owner string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := req.Context()
	if owner != "" {
		ctx = shared.WithUserID(ctx, owner)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// closeTracker records whether Close was called.
type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func newTracked(s string) *closeTracker {
	return &closeTracker{Reader: strings.NewReader(s)}
}
