// Package media derives still images from stored videos.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/justic/justic-api/internal/domain"
)

// Extractor produces a JPEG thumbnail from a local video file.
type Extractor interface {
	// ExtractFrame returns the frame at offset encoded as JPEG. Failures wrap
	// domain.ErrDerivation.
	ExtractFrame(ctx context.Context, videoPath string, offset time.Duration) ([]byte, error)
}

// EncodeThumbnail decodes an image from r, scales it to width (keeping the
// aspect ratio; zero keeps the original size) and encodes it as JPEG.
func EncodeThumbnail(r io.Reader, width, quality int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame: %w", domain.ErrDerivation, err)
	}
	return encodeJPEG(img, width, quality)
}

func encodeJPEG(img image.Image, width, quality int) ([]byte, error) {
	if width > 0 && img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: encode jpeg: %w", domain.ErrDerivation, err)
	}
	return buf.Bytes(), nil
}
