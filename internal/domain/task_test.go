package domain

import (
	"errors"
	"testing"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask("veo_task_01", "owner-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != TaskStatusQueued {
		t.Errorf("Expected status %s, got %s", TaskStatusQueued, task.Status)
	}

	if !task.OwnedBy("owner-1") {
		t.Error("Expected task to be owned by owner-1")
	}

	if task.OwnedBy("owner-2") {
		t.Error("Expected task not to be owned by owner-2")
	}

	_, err = NewTask("", "owner-1")
	if err != ErrEmptyTaskID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskID, err)
	}

	_, err = NewTask("veo_task_01", "")
	if err != ErrEmptyTaskOwner {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskOwner, err)
	}

	_, err = NewTask("../escape", "owner-1")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for path-like ID, got %v", err)
	}
}

func TestTaskValidateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	task := Task{ID: "t1", Owner: "o1", Status: TaskStatusUnknown}
	if err := task.Validate(); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskStatusQueued, TaskStatusDone, true},
		{TaskStatusQueued, TaskStatusFailed, true},
		{TaskStatusQueued, TaskStatusQueued, false},
		{TaskStatusDone, TaskStatusFailed, false},
		{TaskStatusFailed, TaskStatusDone, false},
		{TaskStatusDone, TaskStatusQueued, false},
		{TaskStatusQueued, TaskStatusUnknown, false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}

		err := CheckTransition(tc.from, tc.to)
		if tc.want && err != nil {
			t.Errorf("CheckTransition(%s, %s) returned unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.want && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("CheckTransition(%s, %s) = %v, want ErrInvalidTransition", tc.from, tc.to, err)
		}
	}
}

func TestValidateIdentifier(t *testing.T) {
	t.Parallel()

	valid := []string{"abc123", "veo_task-9f", "a.b"}
	for _, id := range valid {
		if err := ValidateIdentifier(id); err != nil {
			t.Errorf("Expected %q to be valid, got %v", id, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", `a\b`}
	for _, id := range invalid {
		if err := ValidateIdentifier(id); !errors.Is(err, ErrValidation) {
			t.Errorf("Expected %q to be invalid, got %v", id, err)
		}
	}
}
