package mocks

import (
	"context"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/provider"
	"github.com/justic/justic-api/internal/service/video"
)

// MockVideoService implements video.Service for handler tests. Unset
// function fields return zero values.
type MockVideoService struct {
	GenerateFn       func(ctx context.Context, owner, prompt string) (*domain.Task, error)
	HandleCallbackFn func(ctx context.Context, payload provider.CallbackPayload) error
	StatusFn         func(ctx context.Context, owner, taskID string) (*domain.Task, error)
	ListFn           func(ctx context.Context, owner string) ([]domain.Task, error)
	StreamVideoFn    func(ctx context.Context, owner, taskID string) (*domain.Artifact, error)
	ThumbnailFn      func(ctx context.Context, owner, taskID string) (*domain.Artifact, error)
}

var _ video.Service = (*MockVideoService)(nil)

func (m *MockVideoService) Generate(ctx context.Context, owner, prompt string) (*domain.Task, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, owner, prompt)
	}
	return nil, nil
}

func (m *MockVideoService) HandleCallback(ctx context.Context, payload provider.CallbackPayload) error {
	if m.HandleCallbackFn != nil {
		return m.HandleCallbackFn(ctx, payload)
	}
	return nil
}

func (m *MockVideoService) Status(ctx context.Context, owner, taskID string) (*domain.Task, error) {
	if m.StatusFn != nil {
		return m.StatusFn(ctx, owner, taskID)
	}
	return nil, nil
}

func (m *MockVideoService) List(ctx context.Context, owner string) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner)
	}
	return []domain.Task{}, nil
}

func (m *MockVideoService) StreamVideo(ctx context.Context, owner, taskID string) (*domain.Artifact, error) {
	if m.StreamVideoFn != nil {
		return m.StreamVideoFn(ctx, owner, taskID)
	}
	return nil, nil
}

func (m *MockVideoService) Thumbnail(ctx context.Context, owner, taskID string) (*domain.Artifact, error) {
	if m.ThumbnailFn != nil {
		return m.ThumbnailFn(ctx, owner, taskID)
	}
	return nil, nil
}
