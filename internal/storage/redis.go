package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kimiya00/smart-todo-app/internal/logging"
	"github.com/Kimiya00/smart-todo-app/internal/task"
)

const (
	// TasksKey is the Redis key holding the task collection.
	TasksKey = "smarttodo:tasks"
	// SettingsKey is the Redis key holding the settings record.
	SettingsKey = "smarttodo:settings"
	// DefaultRedisURL is the default Redis connection URL.
	DefaultRedisURL = "redis://localhost:6379"

	connectTimeout = 2 * time.Second
)

// RedisAdapter persists state as two JSON values in Redis. It is a
// plain key-value cache backend; there is no queueing or TTL.
type RedisAdapter struct {
	rdb *redis.Client
}

// NewRedisAdapter connects to Redis at the given URL and verifies the
// connection with a ping.
func NewRedisAdapter(url string) (*RedisAdapter, error) {
	if url == "" {
		url = DefaultRedisURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisAdapter{rdb: rdb}, nil
}

// NewRedisAdapterFromClient wraps an existing client. Used by tests.
func NewRedisAdapterFromClient(rdb *redis.Client) *RedisAdapter {
	return &RedisAdapter{rdb: rdb}
}

// Load reads the task collection and settings keys.
func (r *RedisAdapter) Load(ctx context.Context) ([]task.Task, Meta, error) {
	tasks := []task.Task{}
	data, err := r.rdb.Get(ctx, TasksKey).Result()
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(data), &tasks); err != nil {
			logging.WithError(err).Warnf("corrupt task data under %s, starting fresh", TasksKey)
			tasks = []task.Task{}
		}
	case errors.Is(err, redis.Nil):
		// No saved data yet.
	default:
		return nil, DefaultMeta(), fmt.Errorf("failed to read %s: %w", TasksKey, err)
	}

	meta := DefaultMeta()
	data, err = r.rdb.Get(ctx, SettingsKey).Result()
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(data), &meta); err != nil {
			logging.WithError(err).Warnf("corrupt settings under %s, starting fresh", SettingsKey)
			meta = DefaultMeta()
		}
	case errors.Is(err, redis.Nil):
	default:
		return nil, DefaultMeta(), fmt.Errorf("failed to read %s: %w", SettingsKey, err)
	}

	return tasks, meta.Normalize(), nil
}

// Save writes both records in a single pipeline.
func (r *RedisAdapter) Save(ctx context.Context, tasks []task.Task, meta Meta) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	taskData, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	pipe := r.rdb.Pipeline()
	pipe.Set(ctx, TasksKey, taskData, 0)
	pipe.Set(ctx, SettingsKey, metaData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisAdapter) Close() error {
	return r.rdb.Close()
}
