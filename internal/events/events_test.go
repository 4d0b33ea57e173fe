package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justic/justic-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewTaskEvent(t *testing.T) {
	tests := []struct {
		status   domain.TaskStatus
		wantType string
	}{
		{domain.TaskStatusQueued, TypeTaskQueued},
		{domain.TaskStatusDone, TypeTaskDone},
		{domain.TaskStatusFailed, TypeTaskFailed},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			task := &domain.Task{ID: "t1", Owner: "u1", Status: tc.status}
			event := NewTaskEvent(task)

			assert.NotEqual(t, uuid.Nil, event.ID)
			assert.Equal(t, tc.wantType, event.Type)
			assert.Equal(t, "t1", event.TaskID)
			assert.Equal(t, "u1", event.Owner)
			assert.Equal(t, tc.status, event.Status)
			assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)
		})
	}
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *TaskEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}
