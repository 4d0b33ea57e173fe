package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/justic/justic-api/internal/domain"
)

// Event types
const (
	TypeTaskQueued = "task.queued"
	TypeTaskDone   = "task.done"
	TypeTaskFailed = "task.failed"
)

// TaskEvent describes a change in a task's lifecycle.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type      string            `json:"type"`
	TaskID    string            `json:"task_id"`
	Owner     string            `json:"owner"`
	Status    domain.TaskStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewTaskEvent creates an event for task's current status.
func NewTaskEvent(task *domain.Task) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		Type:      TypeForStatus(task.Status),
		TaskID:    task.ID,
		Owner:     task.Owner,
		Status:    task.Status,
		CreatedAt: time.Now().UTC(),
	}
}

// TypeForStatus maps a task status to its event type.
func TypeForStatus(status domain.TaskStatus) string {
	switch status {
	case domain.TaskStatusDone:
		return TypeTaskDone
	case domain.TaskStatusFailed:
		return TypeTaskFailed
	default:
		return TypeTaskQueued
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
