package mocks

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/justic/justic-api/internal/media"
)

// MockExtractor implements media.Extractor for testing
type MockExtractor struct {
	ExtractFrameFn func(ctx context.Context, videoPath string, offset time.Duration) ([]byte, error)

	// Default response values
	Frame []byte
	Err   error

	mu      sync.Mutex
	calls   int
	Offsets []time.Duration
	// Inputs holds the content of the video file seen by each call.
	Inputs [][]byte
}

var _ media.Extractor = (*MockExtractor)(nil)

// ExtractFrame implements media.Extractor
func (m *MockExtractor) ExtractFrame(ctx context.Context, videoPath string, offset time.Duration) ([]byte, error) {
	input, _ := os.ReadFile(videoPath)

	m.mu.Lock()
	m.calls++
	m.Offsets = append(m.Offsets, offset)
	m.Inputs = append(m.Inputs, input)
	m.mu.Unlock()

	if m.ExtractFrameFn != nil {
		return m.ExtractFrameFn(ctx, videoPath, offset)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Frame, nil
}

// Calls returns the number of ExtractFrame calls.
func (m *MockExtractor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
