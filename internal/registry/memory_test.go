package registry_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry(t *testing.T) {
	t.Parallel()
	runRegistryContract(t, func(t *testing.T) registry.Registry {
		return registry.NewMemoryRegistry()
	})
}

// runRegistryContract exercises the behaviour every Registry must provide.
func runRegistryContract(t *testing.T, newRegistry func(t *testing.T) registry.Registry) {
	ctx := context.Background()

	t.Run("insert and get", func(t *testing.T) {
		reg := newRegistry(t)
		task, err := domain.NewTask("t-insert", "u1")
		require.NoError(t, err)
		require.NoError(t, reg.Insert(ctx, task))

		got, err := reg.Get(ctx, "t-insert")
		require.NoError(t, err)
		assert.Equal(t, *task, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		reg := newRegistry(t)
		_, err := reg.Get(ctx, "t-missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("insert rejects invalid task", func(t *testing.T) {
		reg := newRegistry(t)
		err := reg.Insert(ctx, &domain.Task{ID: "t-bad", Owner: "", Status: domain.TaskStatusQueued})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("compare and swap", func(t *testing.T) {
		reg := newRegistry(t)
		task, err := domain.NewTask("t-cas", "u1")
		require.NoError(t, err)
		require.NoError(t, reg.Insert(ctx, task))

		ok, err := reg.CompareAndSwap(ctx, "t-cas", domain.TaskStatusQueued, domain.TaskStatusDone)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = reg.CompareAndSwap(ctx, "t-cas", domain.TaskStatusQueued, domain.TaskStatusFailed)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := reg.Get(ctx, "t-cas")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, got.Status)
	})

	t.Run("compare and swap rejects illegal transitions", func(t *testing.T) {
		reg := newRegistry(t)
		task, err := domain.NewTask("t-illegal", "u1")
		require.NoError(t, err)
		require.NoError(t, reg.Insert(ctx, task))

		_, err = reg.CompareAndSwap(ctx, "t-illegal", domain.TaskStatusDone, domain.TaskStatusQueued)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		_, err = reg.CompareAndSwap(ctx, "t-illegal", domain.TaskStatusQueued, domain.TaskStatusUnknown)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("compare and swap missing", func(t *testing.T) {
		reg := newRegistry(t)
		_, err := reg.CompareAndSwap(ctx, "t-none", domain.TaskStatusQueued, domain.TaskStatusDone)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("single winner under contention", func(t *testing.T) {
		reg := newRegistry(t)
		task, err := domain.NewTask("t-race", "u1")
		require.NoError(t, err)
		require.NoError(t, reg.Insert(ctx, task))

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				to := domain.TaskStatusDone
				if i%2 == 1 {
					to = domain.TaskStatusFailed
				}
				ok, err := reg.CompareAndSwap(ctx, "t-race", domain.TaskStatusQueued, to)
				assert.NoError(t, err)
				if ok {
					wins.Add(1)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}
