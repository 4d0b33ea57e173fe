package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
)

// FFmpegExtractor grabs a single frame with the ffmpeg binary and re-encodes it
// as a JPEG thumbnail.
type FFmpegExtractor struct {
	binary  string
	tempDir string
	width   int
	quality int
	logger  *slog.Logger
}

// Ensure FFmpegExtractor implements Extractor interface
var _ Extractor = (*FFmpegExtractor)(nil)

// NewFFmpegExtractor creates an extractor from configuration.
func NewFFmpegExtractor(cfg config.MediaConfig, logger *slog.Logger) *FFmpegExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpegExtractor{
		binary:  cfg.FFmpegPath,
		tempDir: cfg.TempDir,
		width:   cfg.ThumbnailWidth,
		quality: cfg.JPEGQuality,
		logger:  logger.With("component", "frame_extractor"),
	}
}

// ExtractFrame implements Extractor.ExtractFrame
func (e *FFmpegExtractor) ExtractFrame(ctx context.Context, videoPath string, offset time.Duration) ([]byte, error) {
	dir, err := os.MkdirTemp(e.tempDir, "frame-*")
	if err != nil {
		return nil, fmt.Errorf("%w: temp dir: %w", domain.ErrDerivation, err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	framePath := filepath.Join(dir, "frame.png")
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-ss", formatOffset(offset),
		"-i", videoPath,
		"-frames:v", "1",
		framePath,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		logger.FromContextOrDefault(ctx, e.logger).Error("ffmpeg failed",
			"error", err,
			"stderr", tail(stderr.String(), 512))
		return nil, fmt.Errorf("%w: ffmpeg: %w", domain.ErrDerivation, err)
	}

	f, err := os.Open(framePath)
	if err != nil {
		// ffmpeg exits 0 without output when the offset is past the end.
		return nil, fmt.Errorf("%w: no frame at %s", domain.ErrDerivation, offset)
	}
	defer func() { _ = f.Close() }()

	out, err := EncodeThumbnail(f, e.width, e.quality)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("frame extracted",
		"offset", offset.String(),
		"bytes", len(out),
		"duration_ms", time.Since(start).Milliseconds())
	return out, nil
}

// formatOffset renders d as seconds for ffmpeg's -ss option.
func formatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
