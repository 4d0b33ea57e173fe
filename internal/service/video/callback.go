package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/provider"
	"github.com/justic/justic-api/internal/redact"
)

// HandleCallback implements Service.HandleCallback
func (s *serviceImpl) HandleCallback(ctx context.Context, payload provider.CallbackPayload) error {
	// The provider may hang up before ingestion finishes; the work must not
	// be abandoned with it. Ingestion is bounded by ingestTimeout instead.
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID := payload.Data.TaskID
	resultURL := payload.ResultURL()
	if taskID == "" || resultURL == "" {
		log.Info("ignoring callback without task or result",
			"task_id", taskID,
			"provider_code", payload.Code)
		return nil
	}

	unlock := s.callbacks.Lock(taskID)
	defer unlock()

	task, err := s.registry.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info("ignoring callback for unknown task", "task_id", taskID)
			return nil
		}
		log.Error("failed to read task for callback", "error", err, "task_id", taskID)
		return NewServiceError("callback", "failed to read task", err)
	}

	if task.Status.IsTerminal() {
		log.Info("ignoring duplicate callback",
			"task_id", taskID,
			"status", task.Status)
		return nil
	}

	ingestCtx, cancel := context.WithTimeout(ctx, s.ingestTimeout)
	ingestErr := s.ingest(ingestCtx, task, resultURL)
	cancel()

	next := domain.TaskStatusDone
	if ingestErr != nil {
		next = domain.TaskStatusFailed
		log.Error("failed to ingest generated video",
			"error", redact.Error(ingestErr),
			"task_id", taskID,
			"user_id", task.Owner)
	}

	swapped, err := s.registry.CompareAndSwap(ctx, taskID, domain.TaskStatusQueued, next)
	if err != nil {
		log.Error("failed to update task status",
			"error", err,
			"task_id", taskID,
			"status", next)
		return NewServiceError("callback", "failed to update task status", errors.Join(ingestErr, err))
	}
	if swapped {
		task.Status = next
		log.Info("task completed", "task_id", taskID, "status", next)
		s.emit(ctx, task)
	}

	if ingestErr != nil {
		return NewServiceError("callback", "failed to ingest video", ingestErr)
	}
	return nil
}

// ingest downloads the artifact at resultURL into a temporary file and
// uploads it as task's video.
func (s *serviceImpl) ingest(ctx context.Context, task *domain.Task, resultURL string) error {
	key, err := domain.NewArtifactKey(task.Owner, task.ID, domain.ArtifactVideo)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.media.TempDir, "video-*.mp4")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	n, err := s.provider.Fetch(ctx, resultURL, tmp)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: empty artifact", domain.ErrUpstreamContract)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind temp file: %w", err)
	}

	return s.store.Put(ctx, key, tmp, n)
}
