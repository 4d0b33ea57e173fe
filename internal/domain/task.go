package domain

import (
	"errors"
	"fmt"
	"strings"
)

// TaskStatus represents the processing state of a generation task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusQueued TaskStatus = "QUEUED"
	TaskStatusDone   TaskStatus = "DONE"
	TaskStatusFailed TaskStatus = "FAILED"

	// TaskStatusUnknown is never stored. It is reported for a task that
	// neither the registry nor the object store knows about.
	TaskStatusUnknown TaskStatus = "UNKNOWN"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner cannot be empty")
	ErrInvalidStatus  = errors.New("invalid task status")
)

// Task is one video generation request tracked from admission through
// completion or failure. The ID is assigned by the generation provider.
type Task struct {
	ID     string     `json:"task_id"`
	Owner  string     `json:"owner"`
	Status TaskStatus `json:"status"`
}

// NewTask creates a queued task owned by owner.
// Returns an error if validation fails.
func NewTask(id, owner string) (*Task, error) {
	task := &Task{
		ID:     id,
		Owner:  owner,
		Status: TaskStatusQueued,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyTaskID
	}
	if err := ValidateIdentifier(t.ID); err != nil {
		return err
	}

	if t.Owner == "" {
		return ErrEmptyTaskOwner
	}

	if !t.Status.IsStored() {
		return ErrInvalidStatus
	}

	return nil
}

// OwnedBy reports whether the task belongs to owner.
func (t *Task) OwnedBy(owner string) bool {
	return t.Owner == owner
}

// IsStored reports whether s may be recorded in the task registry.
func (s TaskStatus) IsStored() bool {
	switch s {
	case TaskStatusQueued, TaskStatusDone, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusDone || s == TaskStatusFailed
}

// CanTransition reports whether a task may move from one status to another.
// Only QUEUED -> DONE and QUEUED -> FAILED are allowed.
func CanTransition(from, to TaskStatus) bool {
	return from == TaskStatusQueued && to.IsTerminal()
}

// CheckTransition returns ErrInvalidTransition wrapped with context when the
// transition from -> to is not allowed.
func CheckTransition(from, to TaskStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ValidateIdentifier checks that an owner or task identifier can be used as a
// single object-key path segment.
func ValidateIdentifier(id string) error {
	if id == "" || id == "." || id == ".." {
		return fmt.Errorf("%w: identifier %q", ErrValidation, id)
	}
	if strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("%w: identifier contains a path separator", ErrValidation)
	}
	return nil
}
