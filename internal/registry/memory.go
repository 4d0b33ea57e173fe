package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/justic/justic-api/internal/domain"
)

// MemoryRegistry keeps tasks in a process-local map. Its contents are lost on
// restart.
type MemoryRegistry struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// Ensure MemoryRegistry implements Registry interface
var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tasks: make(map[string]domain.Task)}
}

// Insert implements Registry.Insert
func (r *MemoryRegistry) Insert(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", domain.ErrValidation)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	r.mu.Lock()
	r.tasks[task.ID] = *task
	r.mu.Unlock()
	return nil
}

// Get implements Registry.Get
func (r *MemoryRegistry) Get(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	task, ok := r.tasks[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: task %s", domain.ErrNotFound, id)
	}
	return &task, nil
}

// CompareAndSwap implements Registry.CompareAndSwap
func (r *MemoryRegistry) CompareAndSwap(ctx context.Context, id string, from, to domain.TaskStatus) (bool, error) {
	if err := domain.CheckTransition(from, to); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return false, fmt.Errorf("%w: task %s", domain.ErrNotFound, id)
	}
	if task.Status != from {
		return false, nil
	}
	task.Status = to
	r.tasks[id] = task
	return true, nil
}
