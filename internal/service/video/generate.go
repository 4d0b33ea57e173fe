package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/redact"
)

// Generate implements Service.Generate
func (s *serviceImpl) Generate(ctx context.Context, owner, prompt string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if err := domain.ValidateIdentifier(owner); err != nil {
		return nil, err
	}

	taskID, err := s.provider.Submit(ctx, prompt)
	if err != nil {
		log.Error("generation request failed",
			"error", redact.Error(err),
			"user_id", owner)
		return nil, NewServiceError("generate", "failed to submit generation request", err)
	}

	task, err := domain.NewTask(taskID, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamContract, err)
	}

	if err := s.registry.Insert(ctx, task); err != nil {
		log.Error("failed to register task",
			"error", err,
			"task_id", taskID,
			"user_id", owner)
		return nil, NewServiceError("generate", "failed to register task", err)
	}

	log.Info("video generation queued",
		"task_id", task.ID,
		"user_id", owner)

	s.emit(ctx, task)
	return task, nil
}
