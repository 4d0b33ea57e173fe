package video

import (
	"context"
	"errors"
	"sort"

	"github.com/justic/justic-api/internal/domain"
)

// Status implements Service.Status
func (s *serviceImpl) Status(ctx context.Context, owner, taskID string) (*domain.Task, error) {
	key, err := domain.NewArtifactKey(owner, taskID, domain.ArtifactVideo)
	if err != nil {
		return nil, err
	}

	task, err := s.registry.Get(ctx, taskID)
	switch {
	case err == nil:
		if !task.OwnedBy(owner) {
			return nil, domain.ErrNotFound
		}
		return task, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, NewServiceError("status", "failed to read task", err)
	}

	// Not tracked, e.g. after a restart: fall back to the object store.
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, NewServiceError("status", "failed to check stored video", err)
	}

	status := domain.TaskStatusUnknown
	if exists {
		status = domain.TaskStatusDone
	}
	return &domain.Task{ID: taskID, Owner: owner, Status: status}, nil
}

// List implements Service.List
func (s *serviceImpl) List(ctx context.Context, owner string) ([]domain.Task, error) {
	if err := domain.ValidateIdentifier(owner); err != nil {
		return nil, err
	}

	ids, err := s.store.ListTaskIDs(ctx, owner)
	if err != nil {
		return nil, NewServiceError("list", "failed to list stored videos", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	tasks := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		status := domain.TaskStatusDone

		tracked, err := s.registry.Get(ctx, id)
		switch {
		case err == nil:
			if tracked.OwnedBy(owner) {
				status = tracked.Status
			}
		case !errors.Is(err, domain.ErrNotFound):
			return nil, NewServiceError("list", "failed to read task", err)
		}

		tasks = append(tasks, domain.Task{ID: id, Owner: owner, Status: status})
	}

	return tasks, nil
}
