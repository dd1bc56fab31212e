// Package storage provides the persistence adapters the task store
// saves to and loads from. Persisted state is two records: the task
// collection (a JSON array) and the settings (filter + id counter).
package storage

import (
	"context"

	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// Meta is the settings record persisted alongside the task collection.
type Meta struct {
	Filter    task.Filter `json:"filter"`
	IDCounter int64       `json:"idCounter"`
}

// DefaultMeta returns the settings used when nothing is persisted yet.
func DefaultMeta() Meta {
	return Meta{Filter: task.FilterAll}
}

// Normalize fixes up a loaded settings record: unknown filter kinds
// fall back to "all" and a negative counter is reset.
func (m Meta) Normalize() Meta {
	if !m.Filter.IsValid() {
		m.Filter = task.FilterAll
	}
	if m.IDCounter < 0 {
		m.IDCounter = 0
	}
	return m
}

// Adapter is the key-value persistence interface consumed by the store.
//
// Load returns the persisted collection and settings. Implementations
// treat missing or corrupt records as "no saved data" and return empty
// state rather than an error, so a bad file never blocks startup.
// Save must have completed (or failed) by the time it returns.
type Adapter interface {
	Load(ctx context.Context) ([]task.Task, Meta, error)
	Save(ctx context.Context, tasks []task.Task, meta Meta) error
	Close() error
}
