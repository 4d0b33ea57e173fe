// Package registry tracks the owner and status of every admitted generation
// task. Entries move only QUEUED -> DONE or QUEUED -> FAILED; transitions are
// applied with compare-and-swap so concurrent callback deliveries cannot both
// win.
package registry

import (
	"context"

	"github.com/justic/justic-api/internal/domain"
)

// Registry stores task ownership and status.
type Registry interface {
	// Insert records a new task. An existing entry with the same ID is
	// replaced.
	Insert(ctx context.Context, task *domain.Task) error

	// Get returns the task with the given ID or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// CompareAndSwap moves the task from status from to status to. It reports
	// false, without error, when the task's current status is not from.
	// Returns domain.ErrNotFound if the task is absent and
	// domain.ErrInvalidTransition if from -> to is not allowed.
	CompareAndSwap(ctx context.Context, id string, from, to domain.TaskStatus) (bool, error)
}
