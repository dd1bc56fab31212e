package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// resetGlobal clears the singleton so each test loads fresh.
func resetGlobal() {
	configOnce = sync.Once{}
	globalConfig = nil
	configErr = nil
}

func TestDefaultConfig(t *testing.T) {
	resetGlobal()
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.StorageBackend != DefaultStorageBackend {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, DefaultStorageBackend)
	}

	if cfg.RedisURL != DefaultRedisURL {
		t.Errorf("RedisURL = %q, want %q", cfg.RedisURL, DefaultRedisURL)
	}

	if cfg.Notifications != DefaultNotifications {
		t.Errorf("Notifications = %t, want %t", cfg.Notifications, DefaultNotifications)
	}

	if cfg.DataDir == "" {
		t.Error("DataDir should have a default")
	}

	if !cfg.Logging.JSON || !cfg.Logging.Compress {
		t.Errorf("Logging defaults = %+v, want json and compress on", cfg.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	resetGlobal()
	t.Setenv("HOME", t.TempDir())

	t.Setenv("SMARTTODO_STORAGE_BACKEND", BackendRedis)
	t.Setenv("SMARTTODO_DATA_DIR", "/tmp/todo-data")
	t.Setenv("SMARTTODO_REDIS_URL", "redis://custom:6380")
	t.Setenv("SMARTTODO_NOTIFICATIONS", "false")
	t.Setenv("SMARTTODO_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.StorageBackend != BackendRedis {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendRedis)
	}

	if cfg.DataDir != "/tmp/todo-data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/todo-data")
	}

	if cfg.RedisURL != "redis://custom:6380" {
		t.Errorf("RedisURL = %q, want %q", cfg.RedisURL, "redis://custom:6380")
	}

	if cfg.Notifications {
		t.Error("Notifications should be disabled")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestRedisURLFallback(t *testing.T) {
	resetGlobal()
	t.Setenv("HOME", t.TempDir())

	// REDIS_URL applies only when the prefixed variant is unset.
	t.Setenv("REDIS_URL", "redis://fallback:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.RedisURL != "redis://fallback:6379" {
		t.Errorf("RedisURL = %q, want fallback value", cfg.RedisURL)
	}

	resetGlobal()
	t.Setenv("SMARTTODO_REDIS_URL", "redis://primary:6379")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.RedisURL != "redis://primary:6379" {
		t.Errorf("RedisURL = %q, want prefixed variant to win", cfg.RedisURL)
	}
}

func TestConfigFileLoading(t *testing.T) {
	resetGlobal()
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "smart-todo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	content := "storage_backend: redis\nnotifications: false\nlogging:\n  level: warn\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.StorageBackend != BackendRedis {
		t.Errorf("StorageBackend = %q, want %q from config file", cfg.StorageBackend, BackendRedis)
	}
	if cfg.Notifications {
		t.Error("Notifications should be disabled by the config file")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	resetGlobal()
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.WriteFile(filepath.Join(home, ".smart-todo.yaml"), []byte("storage_backend: redis\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SMARTTODO_STORAGE_BACKEND", BackendFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.StorageBackend != BackendFile {
		t.Errorf("StorageBackend = %q, env var should win over the file", cfg.StorageBackend)
	}
}

func TestWriteExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, key := range []string{"storage_backend", "redis_url", "notifications", "logging"} {
		if !strings.Contains(content, key) {
			t.Errorf("Config file missing key: %s", key)
		}
	}
}
