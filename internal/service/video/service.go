// Package video orchestrates the asynchronous video generation pipeline:
// admission of prompts, ingestion of provider callbacks, status and listing
// reads, and delivery of stored videos and derived thumbnails.
package video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/events"
	"github.com/justic/justic-api/internal/media"
	"github.com/justic/justic-api/internal/objectstore"
	"github.com/justic/justic-api/internal/provider"
	"github.com/justic/justic-api/internal/registry"
	"golang.org/x/sync/singleflight"
)

// deriveTimeout bounds a single thumbnail derivation, which outlives the
// request that triggered it when other requests share its result.
const deriveTimeout = 2 * time.Minute

// defaultIngestTimeout bounds downloading and storing one generated video.
const defaultIngestTimeout = 10 * time.Minute

// Service provides the video pipeline operations. owner is always the
// authenticated user's identifier.
type Service interface {
	// Generate submits prompt to the provider and registers the QUEUED task.
	Generate(ctx context.Context, owner, prompt string) (*domain.Task, error)

	// HandleCallback ingests a provider webhook delivery. Unknown tasks,
	// payloads without a result and duplicate deliveries are ignored. The
	// returned error is informational; the task has already been marked
	// FAILED when ingestion fails.
	HandleCallback(ctx context.Context, payload provider.CallbackPayload) error

	// Status reports the status of one of owner's tasks.
	Status(ctx context.Context, owner, taskID string) (*domain.Task, error)

	// List returns owner's stored videos, newest first.
	List(ctx context.Context, owner string) ([]domain.Task, error)

	// StreamVideo opens owner's video for taskID. The caller must close the
	// returned artifact's Body.
	StreamVideo(ctx context.Context, owner, taskID string) (*domain.Artifact, error)

	// Thumbnail opens the thumbnail for owner's taskID, deriving and storing
	// it from the video on first access. The caller must close the returned
	// artifact's Body.
	Thumbnail(ctx context.Context, owner, taskID string) (*domain.Artifact, error)
}

// ServiceError wraps unexpected errors from the video service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "generate", "list")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("video service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// sentinels are returned to callers unwrapped.
var sentinels = []error{
	domain.ErrValidation,
	domain.ErrNotFound,
	domain.ErrUpstream,
	domain.ErrUpstreamRejected,
	domain.ErrUpstreamContract,
	domain.ErrDerivation,
}

// NewServiceError creates a new ServiceError.
// Errors that already carry a domain sentinel are returned unchanged.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err
		}
	}
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

type serviceImpl struct {
	registry  registry.Registry
	store     objectstore.Store
	provider  provider.Client
	extractor media.Extractor
	emitter   events.EventEmitter
	media     config.MediaConfig
	logger    *slog.Logger

	callbacks     *keyedMutex
	thumbs        singleflight.Group
	ingestTimeout time.Duration
}

// Option configures optional service behavior.
type Option func(*serviceImpl)

// WithIngestTimeout bounds the fetch and upload performed for one callback.
// The task is marked FAILED when the deadline passes. Non-positive values
// keep the default.
func WithIngestTimeout(d time.Duration) Option {
	return func(s *serviceImpl) {
		if d > 0 {
			s.ingestTimeout = d
		}
	}
}

// NewService creates a video Service.
// It returns an error if any of the required dependencies are nil.
func NewService(
	reg registry.Registry,
	store objectstore.Store,
	client provider.Client,
	extractor media.Extractor,
	emitter events.EventEmitter,
	mediaCfg config.MediaConfig,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	switch {
	case reg == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "registry cannot be nil"}
	case store == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "store cannot be nil"}
	case client == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "provider cannot be nil"}
	case extractor == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "extractor cannot be nil"}
	case emitter == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		registry:      reg,
		store:         store,
		provider:      client,
		extractor:     extractor,
		emitter:       emitter,
		media:         mediaCfg,
		logger:        logger.With("component", "video_service"),
		callbacks:     newKeyedMutex(),
		ingestTimeout: defaultIngestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// emit publishes a lifecycle event for task. Failures are logged only.
func (s *serviceImpl) emit(ctx context.Context, task *domain.Task) {
	event := events.NewTaskEvent(task)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("failed to emit task event",
			"error", err,
			"event_type", event.Type,
			"task_id", task.ID)
	}
}
