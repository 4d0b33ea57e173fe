package objectstore

import (
	"context"
	"io"

	"github.com/justic/justic-api/internal/domain"
)

// Store defines typed read/write operations against the artifact bucket.
//
// Writes to a key are atomic: a reader never observes a partially written
// object. Failures are reported wrapped in domain.ErrNotFound or
// domain.ErrStorage.
type Store interface {
	// Put uploads size bytes from body under key, replacing any existing object.
	Put(ctx context.Context, key domain.ArtifactKey, body io.ReadSeeker, size int64) error

	// Get opens a read handle to the object under key. The caller must close
	// the returned artifact's Body. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, key domain.ArtifactKey) (*domain.Artifact, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key domain.ArtifactKey) (bool, error)

	// ListTaskIDs returns the identifiers of every task that has a video
	// object under owner's prefix, in no particular order.
	ListTaskIDs(ctx context.Context, owner string) ([]string, error)
}
