package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/justic/justic-api/internal/provider"
)

// MockProviderClient implements provider.Client for testing
type MockProviderClient struct {
	// Custom behavior functions
	SubmitFn func(ctx context.Context, prompt string) (string, error)
	FetchFn  func(ctx context.Context, url string, w io.Writer) (int64, error)

	// Default response values
	TaskID   string
	Artifact []byte
	Err      error

	mu          sync.Mutex
	SubmitCalls []string
	FetchCalls  []string
}

var _ provider.Client = (*MockProviderClient)(nil)

// Submit implements provider.Client
func (m *MockProviderClient) Submit(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, prompt)
	m.mu.Unlock()

	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.TaskID, nil
}

// Fetch implements provider.Client
func (m *MockProviderClient) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	m.mu.Lock()
	m.FetchCalls = append(m.FetchCalls, url)
	m.mu.Unlock()

	if m.FetchFn != nil {
		return m.FetchFn(ctx, url, w)
	}
	if m.Err != nil {
		return 0, m.Err
	}
	return io.Copy(w, bytes.NewReader(m.Artifact))
}

// SubmitCount returns the number of Submit calls.
func (m *MockProviderClient) SubmitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SubmitCalls)
}

// FetchCount returns the number of Fetch calls.
func (m *MockProviderClient) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FetchCalls)
}
