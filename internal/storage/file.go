package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Kimiya00/smart-todo-app/internal/logging"
	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// File names for the two persisted records inside the data directory.
const (
	tasksFile    = "tasks.json"
	settingsFile = "settings.json"
)

// FileAdapter persists state as JSON files in a data directory.
// Writes go through a temporary file and an atomic rename. A corrupt
// record is moved aside to a timestamped .corrupt file and treated as
// no saved data.
type FileAdapter struct {
	dir string
}

// NewFileAdapter creates a file adapter rooted at dir, creating the
// directory if needed.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileAdapter{dir: dir}, nil
}

// Dir returns the data directory.
func (f *FileAdapter) Dir() string {
	return f.dir
}

// Load reads the task collection and settings records.
func (f *FileAdapter) Load(ctx context.Context) ([]task.Task, Meta, error) {
	tasks := []task.Task{}
	tasksPath := filepath.Join(f.dir, tasksFile)
	if data, err := os.ReadFile(tasksPath); err == nil {
		if err := json.Unmarshal(data, &tasks); err != nil {
			f.quarantine(tasksPath, err)
			tasks = []task.Task{}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, DefaultMeta(), fmt.Errorf("failed to read tasks: %w", err)
	}

	meta := DefaultMeta()
	settingsPath := filepath.Join(f.dir, settingsFile)
	if data, err := os.ReadFile(settingsPath); err == nil {
		if err := json.Unmarshal(data, &meta); err != nil {
			f.quarantine(settingsPath, err)
			meta = DefaultMeta()
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, DefaultMeta(), fmt.Errorf("failed to read settings: %w", err)
	}

	return tasks, meta.Normalize(), nil
}

// Save writes both records atomically.
func (f *FileAdapter) Save(ctx context.Context, tasks []task.Task, meta Meta) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := f.writeJSON(filepath.Join(f.dir, tasksFile), tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	if err := f.writeJSON(filepath.Join(f.dir, settingsFile), meta); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Close is a no-op for the file adapter.
func (f *FileAdapter) Close() error {
	return nil
}

// writeJSON writes v to path via a temp file and atomic rename.
func (f *FileAdapter) writeJSON(path string, v any) error {
	tmp, err := os.CreateTemp(f.dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// quarantine moves a corrupt record aside so the next save starts clean.
func (f *FileAdapter) quarantine(path string, cause error) {
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptPath := fmt.Sprintf("%s.corrupt-%s", path, timestamp)
	if err := os.Rename(path, corruptPath); err != nil {
		logging.WithError(err).Warnf("failed to move corrupt file %s aside", path)
		return
	}
	logging.WithError(cause).Warnf("corrupt state in %s moved to %s, starting fresh", filepath.Base(path), filepath.Base(corruptPath))
}
