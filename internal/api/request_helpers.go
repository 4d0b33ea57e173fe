package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/justic/justic-api/internal/api/shared"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
)

// requireOwner extracts the authenticated owner id placed in the context by
// the auth middleware. It writes a 401 and returns false when absent.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := shared.GetUserID(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("owner not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return "", false
	}
	return owner, true
}

// pathTaskID returns the {taskID} URL parameter with an optional suffix
// removed.
func pathTaskID(r *http.Request, suffix string) (string, error) {
	id := chi.URLParam(r, "taskID")
	if suffix != "" {
		id = strings.TrimSuffix(id, suffix)
	}
	if id == "" {
		return "", fmt.Errorf("%w: task id is required", domain.ErrValidation)
	}
	return id, nil
}

// streamArtifact copies the artifact body to w in chunkSize pieces, flushing
// after each, and always closes the body.
func streamArtifact(w http.ResponseWriter, r *http.Request, a *domain.Artifact, chunkSize int, log *slog.Logger) {
	defer func() { _ = a.Body.Close() }()

	w.Header().Set("Content-Type", a.ContentType)
	if a.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := a.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				// Client went away.
				log.Debug("stream aborted", "error", err, "bytes", written)
				return
			}
			written += int64(n)
			_ = rc.Flush()
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				log.Error("stream read failed", "error", readErr, "bytes", written)
			}
			return
		}
		if r.Context().Err() != nil {
			return
		}
	}
}

// withQuery returns base with key=value added to its query string.
func withQuery(base, key, value string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
