package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
)

// StreamVideo implements Service.StreamVideo
func (s *serviceImpl) StreamVideo(ctx context.Context, owner, taskID string) (*domain.Artifact, error) {
	key, err := domain.NewArtifactKey(owner, taskID, domain.ArtifactVideo)
	if err != nil {
		return nil, err
	}

	art, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, NewServiceError("stream_video", "failed to open video", err)
	}
	return art, nil
}

// Thumbnail implements Service.Thumbnail
func (s *serviceImpl) Thumbnail(ctx context.Context, owner, taskID string) (*domain.Artifact, error) {
	key, err := domain.NewArtifactKey(owner, taskID, domain.ArtifactThumbnail)
	if err != nil {
		return nil, err
	}

	art, err := s.store.Get(ctx, key)
	if err == nil {
		return art, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, NewServiceError("thumbnail", "failed to open thumbnail", err)
	}

	// Concurrent requests for the same thumbnail share one derivation.
	_, err, _ = s.thumbs.Do(key.ObjectName(), func() (interface{}, error) {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deriveTimeout)
		defer cancel()
		return nil, s.deriveThumbnail(dctx, key)
	})
	if err != nil {
		return nil, NewServiceError("thumbnail", "failed to derive thumbnail", err)
	}

	art, err = s.store.Get(ctx, key)
	if err != nil {
		return nil, NewServiceError("thumbnail", "failed to open derived thumbnail", err)
	}
	return art, nil
}

// deriveThumbnail extracts a frame from the stored video and uploads it under
// thumbKey. Nothing is uploaded when extraction fails.
func (s *serviceImpl) deriveThumbnail(ctx context.Context, thumbKey domain.ArtifactKey) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Another replica may have stored it in the meantime.
	exists, err := s.store.Exists(ctx, thumbKey)
	if err != nil {
		log.Warn("failed to check for existing thumbnail, deriving anyway",
			"error", err,
			"object", thumbKey.ObjectName())
	} else if exists {
		return nil
	}

	videoKey := thumbKey
	videoKey.Kind = domain.ArtifactVideo

	video, err := s.store.Get(ctx, videoKey)
	if err != nil {
		return err
	}
	defer func() { _ = video.Body.Close() }()

	tmp, err := os.CreateTemp(s.media.TempDir, "thumb-src-*.mp4")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, video.Body); err != nil {
		return fmt.Errorf("%w: spool video: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush temp file: %w", err)
	}

	frame, err := s.extractor.ExtractFrame(ctx, tmp.Name(), s.media.ThumbnailOffset())
	if err != nil {
		log.Error("thumbnail extraction failed",
			"error", err,
			"object", videoKey.ObjectName())
		if !errors.Is(err, domain.ErrDerivation) {
			err = fmt.Errorf("%w: %w", domain.ErrDerivation, err)
		}
		return err
	}
	if len(frame) == 0 {
		return fmt.Errorf("%w: empty frame", domain.ErrDerivation)
	}

	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(frame), int64(len(frame))); err != nil {
		return err
	}

	log.Info("thumbnail derived", "object", thumbKey.ObjectName(), "bytes", len(frame))
	return nil
}
