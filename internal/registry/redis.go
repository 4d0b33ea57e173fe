package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/justic/justic-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	fieldOwner  = "owner"
	fieldStatus = "status"
)

// casScript moves the status field from ARGV[1] to ARGV[2].
// Returns -1 when the key is missing, 0 on status mismatch and 1 on success.
var casScript = redis.NewScript(`
local current = redis.call("HGET", KEYS[1], "status")
if not current then
  return -1
end
if current ~= ARGV[1] then
  return 0
end
redis.call("HSET", KEYS[1], "status", ARGV[2])
return 1
`)

// RedisRegistry stores each task as a hash with owner and status fields, so
// that tasks survive process restarts and are shared by all replicas.
type RedisRegistry struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	logger    *slog.Logger
}

// Ensure RedisRegistry implements Registry interface
var _ Registry = (*RedisRegistry)(nil)

// NewRedisRegistry creates a RedisRegistry. A zero ttl keeps entries forever.
func NewRedisRegistry(client redis.UniversalClient, keyPrefix string, ttl time.Duration, logger *slog.Logger) *RedisRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRegistry{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger.With("component", "task_registry"),
	}
}

func (r *RedisRegistry) key(id string) string {
	return r.keyPrefix + id
}

// Insert implements Registry.Insert
func (r *RedisRegistry) Insert(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", domain.ErrValidation)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	key := r.key(task.ID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldOwner, task.Owner, fieldStatus, string(task.Status))
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
	}

	r.logger.Debug("task registered", "task_id", task.ID, "status", task.Status)
	return nil
}

// Get implements Registry.Get
func (r *RedisRegistry) Get(ctx context.Context, id string) (*domain.Task, error) {
	values, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read task %s: %w", id, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: task %s", domain.ErrNotFound, id)
	}

	task := &domain.Task{
		ID:     id,
		Owner:  values[fieldOwner],
		Status: domain.TaskStatus(values[fieldStatus]),
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt registry entry %s: %w", id, err)
	}
	return task, nil
}

// CompareAndSwap implements Registry.CompareAndSwap
func (r *RedisRegistry) CompareAndSwap(ctx context.Context, id string, from, to domain.TaskStatus) (bool, error) {
	if err := domain.CheckTransition(from, to); err != nil {
		return false, err
	}

	res, err := casScript.Run(ctx, r.client, []string{r.key(id)}, string(from), string(to)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("failed to update task %s: %w", id, err)
	}

	switch res {
	case -1:
		return false, fmt.Errorf("%w: task %s", domain.ErrNotFound, id)
	case 1:
		r.logger.Debug("task status changed", "task_id", id, "from", from, "to", to)
		return true, nil
	default:
		return false, nil
	}
}
