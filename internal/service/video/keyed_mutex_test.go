package video

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/justic/justic-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	km := newKeyedMutex()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  = map[string]int{}
		maxSeen int
	)
	for i := 0; i < 32; i++ {
		key := []string{"a", "b"}[i%2]
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(key)
			defer unlock()

			mu.Lock()
			active[key]++
			if active[key] > maxSeen {
				maxSeen = active[key]
			}
			mu.Unlock()

			mu.Lock()
			active[key]--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "holders of the same key must not overlap")
	assert.Equal(t, 0, km.size(), "released keys must be dropped")
}

func TestNewServiceError(t *testing.T) {
	assert.Nil(t, NewServiceError("op", "msg", nil))

	notFound := fmt.Errorf("%w: object u1/t1.mp4", domain.ErrNotFound)
	assert.Same(t, notFound, NewServiceError("stream_video", "failed", notFound))

	err := NewServiceError("list", "failed to list", errors.New("boom"))
	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "video service list failed: failed to list: boom", err.Error())
}
