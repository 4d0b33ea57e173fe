// Package mocks holds function-field fakes for the video service, provider
// client, frame extractor, user store and JWT service. Set a Fn field to
// override a method; otherwise it returns zero values or the fake's canned
// fields such as Artifact and Frame.
//
//	svc := &mocks.MockVideoService{
//		StatusFn: func(ctx context.Context, owner, taskID string) (*domain.Task, error) {
//			return &domain.Task{ID: taskID, Owner: owner, Status: domain.TaskStatusDone}, nil
//		},
//	}
package mocks
