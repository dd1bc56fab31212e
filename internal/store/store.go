// Package store implements the task store: an in-memory, single-actor
// collection of tasks with filtering, statistics and import/export,
// persisted through a storage adapter on every mutation.
package store

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/Kimiya00/smart-todo-app/internal/logging"
	"github.com/Kimiya00/smart-todo-app/internal/storage"
	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// Stats summarizes the collection. Total == Active + Completed.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Store owns the ordered task collection, id allocation and the
// persisted filter state. All operations are synchronous and atomic
// with respect to each other; there is exactly one logical actor.
//
// Persistence failures are non-fatal: the store keeps operating in
// memory, logs a warning and exposes the failure via SaveWarning.
type Store struct {
	adapter   storage.Adapter
	tasks     []task.Task
	filter    task.Filter
	idCounter int64
	saveErr   error
	log       *logging.Logger
}

// Open loads persisted state through the adapter and returns a ready
// store. A load failure falls back to an empty collection with a
// logged warning; it never blocks startup.
func Open(ctx context.Context, adapter storage.Adapter) *Store {
	log := logging.WithField("component", "store")

	tasks, meta, err := adapter.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load saved state, starting empty")
		tasks = nil
		meta = storage.DefaultMeta()
	}

	s := &Store{
		adapter:   adapter,
		tasks:     tasks,
		filter:    meta.Filter,
		idCounter: meta.IDCounter,
		log:       log,
	}

	// The counter never goes below the highest live id, even if the
	// settings record lagged behind the task record.
	for _, t := range s.tasks {
		if t.ID > s.idCounter {
			s.idCounter = t.ID
		}
	}

	return s
}

// Add validates text, allocates the next id and prepends a new task.
func (s *Store) Add(ctx context.Context, text string, prio task.Priority) (task.Task, error) {
	text, err := task.ValidateText(text)
	if err != nil {
		return task.Task{}, err
	}
	if prio == "" {
		prio = task.DefaultPriority
	}
	if !prio.IsValid() {
		return task.Task{}, fmt.Errorf("%w: %q", task.ErrInvalidPriority, prio)
	}
	if err := s.checkDuplicate(text, 0); err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:        s.nextID(),
		Text:      text,
		Priority:  prio,
		CreatedAt: time.Now().UTC(),
	}
	s.tasks = append([]task.Task{t}, s.tasks...)
	s.persist(ctx)

	s.log.WithField("task_id", t.ID).Debug("task added")
	return t, nil
}

// Delete removes a task. Deleting an incomplete high-priority task is
// destructive enough to require an external confirmation signal: the
// caller gets ErrConfirmationRequired and re-invokes with confirm set.
func (s *Store) Delete(ctx context.Context, id int64, confirm bool) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", task.ErrTaskNotFound, id)
	}

	t := s.tasks[idx]
	if t.Priority == task.PriorityHigh && !t.Completed && !confirm {
		return fmt.Errorf("%w: task %d is high priority and not completed", task.ErrConfirmationRequired, id)
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.persist(ctx)

	s.log.WithField("task_id", id).Debug("task deleted")
	return nil
}

// ToggleComplete flips the completion state of a task. Completing a
// task stamps CompletedAt and moves it to the end of the collection;
// un-completing clears CompletedAt and leaves the position unchanged.
func (s *Store) ToggleComplete(ctx context.Context, id int64) (task.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("%w: id %d", task.ErrTaskNotFound, id)
	}

	t := s.tasks[idx]
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
		s.tasks[idx] = t
	} else {
		now := time.Now().UTC()
		t.Completed = true
		t.CompletedAt = &now
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		s.tasks = append(s.tasks, t)
	}
	s.persist(ctx)

	return t, nil
}

// Edit replaces the text of a task. The same validation and duplicate
// rules as Add apply, excluding the task itself. ID and CreatedAt are
// never changed; EditedAt is stamped.
func (s *Store) Edit(ctx context.Context, id int64, newText string) (task.Task, error) {
	text, err := task.ValidateText(newText)
	if err != nil {
		return task.Task{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("%w: id %d", task.ErrTaskNotFound, id)
	}
	if err := s.checkDuplicate(text, id); err != nil {
		return task.Task{}, err
	}

	now := time.Now().UTC()
	s.tasks[idx].Text = text
	s.tasks[idx].EditedAt = &now
	s.persist(ctx)

	return s.tasks[idx], nil
}

// ClearCompleted removes all completed tasks and returns how many were
// removed. With nothing to clear it returns 0 and ErrNothingToClear
// without requiring confirmation; otherwise the caller must confirm.
func (s *Store) ClearCompleted(ctx context.Context, confirm bool) (int, error) {
	count := 0
	for _, t := range s.tasks {
		if t.Completed {
			count++
		}
	}
	if count == 0 {
		return 0, task.ErrNothingToClear
	}
	if !confirm {
		return 0, fmt.Errorf("%w: %d completed tasks would be removed", task.ErrConfirmationRequired, count)
	}

	kept := make([]task.Task, 0, len(s.tasks)-count)
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persist(ctx)

	s.log.WithField("count", count).Debug("completed tasks cleared")
	return count, nil
}

// Filter returns a restartable view over a snapshot of the collection.
// Iterating never mutates storage order or persisted state.
func (s *Store) Filter(kind task.Filter) iter.Seq[task.Task] {
	snapshot := slices.Clone(s.tasks)
	return func(yield func(task.Task) bool) {
		for _, t := range snapshot {
			if !kind.Matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Filtered returns the tasks matching the current persisted filter.
func (s *Store) Filtered() []task.Task {
	return slices.Collect(s.Filter(s.filter))
}

// SetFilter updates and persists the current filter kind.
func (s *Store) SetFilter(ctx context.Context, f task.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", task.ErrInvalidFilter, f)
	}
	s.filter = f
	s.persist(ctx)
	return nil
}

// CurrentFilter returns the persisted filter kind.
func (s *Store) CurrentFilter() task.Filter {
	return s.filter
}

// Stats returns derived counts over the current collection.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}

// Tasks returns a copy of the collection in storage order.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Get returns a task by id.
func (s *Store) Get(id int64) (task.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("%w: id %d", task.ErrTaskNotFound, id)
	}
	return s.tasks[idx], nil
}

// SaveWarning returns the most recent persistence failure, or nil if
// the last save succeeded. The caller surfaces it to the user.
func (s *Store) SaveWarning() error {
	return s.saveErr
}

// Flush resaves the current state unconditionally and reports the
// outcome. Used as a best-effort safety net on teardown.
func (s *Store) Flush(ctx context.Context) error {
	s.persist(ctx)
	return s.saveErr
}

func (s *Store) nextID() int64 {
	s.idCounter++
	return s.idCounter
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// checkDuplicate enforces the duplicate rule: no two incomplete tasks
// may share case-insensitive identical text. Completed tasks are
// excluded from the comparison. excludeID skips the task being edited.
func (s *Store) checkDuplicate(text string, excludeID int64) error {
	for _, t := range s.tasks {
		if t.Completed || t.ID == excludeID {
			continue
		}
		if task.SameText(t.Text, text) {
			return fmt.Errorf("%w: %q", task.ErrDuplicateText, text)
		}
	}
	return nil
}

// persist saves the collection and settings through the adapter. A
// failure is recorded and logged but does not fail the operation.
func (s *Store) persist(ctx context.Context) {
	meta := storage.Meta{Filter: s.filter, IDCounter: s.idCounter}
	if err := s.adapter.Save(ctx, s.tasks, meta); err != nil {
		s.saveErr = fmt.Errorf("%w: %v", task.ErrPersistence, err)
		s.log.WithError(err).Warn("failed to persist state, continuing in memory")
		return
	}
	s.saveErr = nil
}
