package api

import "github.com/justic/justic-api/internal/domain"

// GenerateRequest is the body of POST /api/video/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

// TaskResponse reports a task and its status.
type TaskResponse struct {
	TaskID string            `json:"task_id"`
	Status domain.TaskStatus `json:"status"`
}

// ListResponse is the body of GET /api/video/list.
type ListResponse struct {
	Videos []TaskResponse `json:"videos"`
}

// CallbackAck is returned for every provider callback.
type CallbackAck struct {
	Code int `json:"code"`
}

// SessionResponse carries the access token redeemed from a login session.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

func newTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{TaskID: t.ID, Status: t.Status}
}
