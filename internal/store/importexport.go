package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// ImportMode selects how imported tasks combine with the existing
// collection. The choice belongs to the caller; the store never prompts.
type ImportMode string

const (
	// ImportMerge prepends imported tasks as a block ahead of the
	// existing collection, preserving their input order.
	ImportMerge ImportMode = "merge"
	// ImportReplace discards the existing collection entirely.
	ImportReplace ImportMode = "replace"
)

// ParseImportMode parses an import mode string.
func ParseImportMode(s string) (ImportMode, error) {
	m := ImportMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ImportMerge, ImportReplace:
		return m, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (want merge or replace)", s)
	}
}

// ExportVersion is the envelope format version.
const ExportVersion = "1.0"

// Envelope is the JSON wrapper used for export and accepted on import.
type Envelope struct {
	Tasks      []task.Task `json:"tasks"`
	ExportDate time.Time   `json:"exportDate"`
	Version    string      `json:"version"`
}

// Export serializes the collection into an envelope. An empty
// collection fails with ErrEmptyExport; callers may relax that by
// checking Stats first.
func (s *Store) Export() ([]byte, error) {
	if len(s.tasks) == 0 {
		return nil, task.ErrEmptyExport
	}
	env := Envelope{
		Tasks:      s.Tasks(),
		ExportDate: time.Now().UTC(),
		Version:    ExportVersion,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Import decodes a payload (an envelope or a bare array of task-like
// objects) and folds the valid entries into the collection. Entries
// without a non-empty text field are dropped; if none remain the
// import fails. Every imported task gets a fresh id, CreatedAt is
// defaulted only when absent, and unknown input fields are preserved.
// A decode failure leaves the collection untouched.
func (s *Store) Import(ctx context.Context, raw []byte, mode ImportMode) (int, error) {
	switch mode {
	case ImportMerge, ImportReplace:
	default:
		return 0, fmt.Errorf("invalid import mode %q", mode)
	}

	entries, err := decodePayload(raw)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	imported := make([]task.Task, 0, len(entries))
	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		e.Text = text
		e.ID = s.nextID()
		if !e.Priority.IsValid() {
			e.Priority = task.DefaultPriority
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		imported = append(imported, e)
	}
	if len(imported) == 0 {
		return 0, task.ErrNoValidTasks
	}

	switch mode {
	case ImportReplace:
		s.tasks = imported
	default:
		s.tasks = append(imported, s.tasks...)
	}
	s.persist(ctx)

	s.log.WithFields(map[string]interface{}{
		"count": len(imported),
		"mode":  string(mode),
	}).Info("tasks imported")
	return len(imported), nil
}

// decodePayload accepts either the export envelope or a bare JSON
// array of task-like objects.
func decodePayload(raw []byte) ([]task.Task, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", task.ErrImportFormat)
	}

	switch trimmed[0] {
	case '[':
		var entries []task.Task
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", task.ErrImportFormat, err)
		}
		return entries, nil
	case '{':
		var env struct {
			Tasks []task.Task `json:"tasks"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", task.ErrImportFormat, err)
		}
		if env.Tasks == nil {
			return nil, fmt.Errorf("%w: missing tasks array", task.ErrImportFormat)
		}
		return env.Tasks, nil
	default:
		return nil, fmt.Errorf("%w: payload is neither an object nor an array", task.ErrImportFormat)
	}
}
