package domain

import (
	"fmt"
	"io"
	"strings"
)

// ArtifactKind distinguishes the objects stored for a task.
type ArtifactKind string

// Artifact kinds
const (
	ArtifactVideo     ArtifactKind = "video"
	ArtifactThumbnail ArtifactKind = "thumbnail"
)

// Extension returns the object-key suffix for the kind.
func (k ArtifactKind) Extension() string {
	switch k {
	case ArtifactVideo:
		return ".mp4"
	case ArtifactThumbnail:
		return ".jpg"
	default:
		return ""
	}
}

// ContentType returns the MIME type served for the kind.
func (k ArtifactKind) ContentType() string {
	switch k {
	case ArtifactVideo:
		return "video/mp4"
	case ArtifactThumbnail:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// ArtifactKey addresses a stored artifact by owner, task and kind.
type ArtifactKey struct {
	Owner  string
	TaskID string
	Kind   ArtifactKind
}

// NewArtifactKey builds and validates a key.
func NewArtifactKey(owner, taskID string, kind ArtifactKind) (ArtifactKey, error) {
	key := ArtifactKey{Owner: owner, TaskID: taskID, Kind: kind}
	if err := key.Validate(); err != nil {
		return ArtifactKey{}, err
	}
	return key, nil
}

// Validate checks that every component of the key is usable.
func (k ArtifactKey) Validate() error {
	if err := ValidateIdentifier(k.Owner); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	if err := ValidateIdentifier(k.TaskID); err != nil {
		return fmt.Errorf("task: %w", err)
	}
	if k.Kind.Extension() == "" {
		return fmt.Errorf("%w: unknown artifact kind %q", ErrValidation, k.Kind)
	}
	return nil
}

// ObjectName returns the bucket object name, "{owner}/{task_id}.mp4" or
// "{owner}/{task_id}.jpg".
func (k ArtifactKey) ObjectName() string {
	return OwnerPrefix(k.Owner) + k.TaskID + k.Kind.Extension()
}

// OwnerPrefix returns the object-name prefix under which all of an owner's
// artifacts are stored.
func OwnerPrefix(owner string) string {
	return owner + "/"
}

// TaskIDFromObjectName extracts the task identifier from a video object name
// under owner's prefix. ok is false for any other object.
func TaskIDFromObjectName(owner, name string) (string, bool) {
	prefix := OwnerPrefix(owner)
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	base := strings.TrimPrefix(name, prefix)
	if strings.Contains(base, "/") || !strings.HasSuffix(base, ArtifactVideo.Extension()) {
		return "", false
	}
	id := strings.TrimSuffix(base, ArtifactVideo.Extension())
	if id == "" {
		return "", false
	}
	return id, true
}

// Artifact is an open read handle to a stored object. The caller must Close
// Body once it is exhausted or abandoned.
type Artifact struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}
