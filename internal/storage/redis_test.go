package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// setupTestRedis starts an in-process Redis and returns an adapter
// backed by it plus the server for direct key inspection.
func setupTestRedis(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	adapter := NewRedisAdapterFromClient(rdb)
	t.Cleanup(func() {
		_ = adapter.Close()
	})

	return adapter, mr
}

func TestRedisAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter, mr := setupTestRedis(t)

	tasks := []task.Task{
		{ID: 3, Text: "ship release", Priority: task.PriorityHigh, CreatedAt: time.Now().UTC()},
		{ID: 1, Text: "tag version", Priority: task.PriorityMedium, Completed: true, CreatedAt: time.Now().UTC()},
	}
	meta := Meta{Filter: task.FilterHighPriority, IDCounter: 3}

	if err := adapter.Save(ctx, tasks, meta); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, key := range []string{TasksKey, SettingsKey} {
		if !mr.Exists(key) {
			t.Errorf("key %s not written", key)
		}
	}

	gotTasks, gotMeta, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(gotTasks) != 2 || gotTasks[0].ID != 3 || gotTasks[1].ID != 1 {
		t.Errorf("tasks = %+v, want saved order preserved", gotTasks)
	}
	if !gotTasks[1].Completed || gotTasks[1].Text != "tag version" {
		t.Errorf("task state lost in round trip: %+v", gotTasks[1])
	}
	if gotMeta != meta {
		t.Errorf("meta = %+v, want %+v", gotMeta, meta)
	}
}

func TestRedisAdapterLoadEmpty(t *testing.T) {
	adapter, _ := setupTestRedis(t)

	tasks, meta, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("Load of an empty instance failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %v, want empty", tasks)
	}
	if meta != DefaultMeta() {
		t.Errorf("meta = %+v, want defaults", meta)
	}
}

func TestRedisAdapterCorruptValues(t *testing.T) {
	ctx := context.Background()
	adapter, mr := setupTestRedis(t)

	if err := mr.Set(TasksKey, "{broken"); err != nil {
		t.Fatalf("seed corrupt tasks: %v", err)
	}
	if err := mr.Set(SettingsKey, "also broken"); err != nil {
		t.Fatalf("seed corrupt settings: %v", err)
	}

	tasks, meta, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load should recover from corruption, got: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %v, want empty", tasks)
	}
	if meta != DefaultMeta() {
		t.Errorf("meta = %+v, want defaults", meta)
	}
}

func TestRedisAdapterSaveNilTasks(t *testing.T) {
	ctx := context.Background()
	adapter, mr := setupTestRedis(t)

	if err := adapter.Save(ctx, nil, DefaultMeta()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := mr.Get(TasksKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if data != "[]" {
		t.Errorf("stored tasks = %q, want empty array, not null", data)
	}
}
