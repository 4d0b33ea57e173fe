package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/justic/justic-api/internal/domain"
)

// MemoryStore is an in-process Store used by tests and local development.
// It counts open read handles so callers can assert that every handle is
// released.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	open    atomic.Int64
}

// Ensure MemoryStore implements Store interface
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put implements Store.Put. The body is read fully before the object becomes
// visible.
func (m *MemoryStore) Put(ctx context.Context, key domain.ArtifactKey, body io.ReadSeeker, size int64) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	data, err := io.ReadAll(io.LimitReader(body, size))
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", domain.ErrStorage, key.ObjectName(), err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("%w: put %s: short body (%d of %d bytes)",
			domain.ErrStorage, key.ObjectName(), len(data), size)
	}

	m.mu.Lock()
	m.objects[key.ObjectName()] = data
	m.mu.Unlock()
	return nil
}

// Get implements Store.Get
func (m *MemoryStore) Get(ctx context.Context, key domain.ArtifactKey) (*domain.Artifact, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	data, ok := m.objects[key.ObjectName()]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: object %s", domain.ErrNotFound, key.ObjectName())
	}

	m.open.Add(1)
	return &domain.Artifact{
		Body:        &trackedReader{Reader: bytes.NewReader(data), open: &m.open},
		ContentType: key.Kind.ContentType(),
		Size:        int64(len(data)),
	}, nil
}

// Exists implements Store.Exists
func (m *MemoryStore) Exists(ctx context.Context, key domain.ArtifactKey) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key.ObjectName()]
	return ok, nil
}

// ListTaskIDs implements Store.ListTaskIDs
func (m *MemoryStore) ListTaskIDs(ctx context.Context, owner string) ([]string, error) {
	if err := domain.ValidateIdentifier(owner); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for name := range m.objects {
		if id, ok := domain.TaskIDFromObjectName(owner, name); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// OpenHandles returns the number of read handles not yet closed.
func (m *MemoryStore) OpenHandles() int64 {
	return m.open.Load()
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

type trackedReader struct {
	*bytes.Reader
	open   *atomic.Int64
	closed bool
}

func (r *trackedReader) Close() error {
	if !r.closed {
		r.closed = true
		r.open.Add(-1)
	}
	return nil
}
