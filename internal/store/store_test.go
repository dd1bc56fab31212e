package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/Kimiya00/smart-todo-app/internal/storage"
	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// memAdapter is an in-memory storage adapter for store tests.
type memAdapter struct {
	tasks     []task.Task
	meta      storage.Meta
	saveCount int
	failSave  bool
	failLoad  bool
}

func (a *memAdapter) Load(ctx context.Context) ([]task.Task, storage.Meta, error) {
	if a.failLoad {
		return nil, storage.DefaultMeta(), errors.New("load failed")
	}
	return slices.Clone(a.tasks), a.meta.Normalize(), nil
}

func (a *memAdapter) Save(ctx context.Context, tasks []task.Task, meta storage.Meta) error {
	if a.failSave {
		return errors.New("disk full")
	}
	a.tasks = slices.Clone(tasks)
	a.meta = meta
	a.saveCount++
	return nil
}

func (a *memAdapter) Close() error {
	return nil
}

func newTestStore(t *testing.T) (*Store, *memAdapter) {
	t.Helper()
	adapter := &memAdapter{meta: storage.DefaultMeta()}
	return Open(context.Background(), adapter), adapter
}

func TestAddPrependsAndAllocatesIDs(t *testing.T) {
	ctx := context.Background()
	st, adapter := newTestStore(t)

	first, err := st.Add(ctx, "first", task.PriorityMedium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := st.Add(ctx, "second", task.PriorityLow)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if first.Completed || first.CompletedAt != nil || first.EditedAt != nil {
		t.Errorf("new task has unexpected state: %+v", first)
	}

	tasks := st.Tasks()
	if len(tasks) != 2 || tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("new tasks should prepend, got order %v", taskIDs(tasks))
	}
	if adapter.saveCount != 2 {
		t.Errorf("saveCount = %d, want 2", adapter.saveCount)
	}
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	tests := []struct {
		name    string
		text    string
		prio    task.Priority
		wantErr error
	}{
		{name: "empty text", text: "   ", prio: task.PriorityLow, wantErr: task.ErrEmptyText},
		{name: "too long", text: longText(201), prio: task.PriorityLow, wantErr: task.ErrTextTooLong},
		{name: "bad priority", text: "ok", prio: task.Priority("urgent"), wantErr: task.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := st.Add(ctx, tt.text, tt.prio); !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if st.Stats().Total != 0 {
		t.Errorf("failed adds must not mutate the collection, total = %d", st.Stats().Total)
	}
}

func TestAddDefaultsPriority(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	got, err := st.Add(ctx, "defaulted", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.Priority != task.DefaultPriority {
		t.Errorf("Priority = %v, want %v", got.Priority, task.DefaultPriority)
	}
}

// TestDuplicateRule walks the duplicate scenario: a case-insensitive
// clash with an incomplete task fails, but completing the original
// frees up the text.
func TestDuplicateRule(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	first, err := st.Add(ctx, "Buy milk", task.PriorityMedium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("first id = %d, want 1", first.ID)
	}

	if _, err := st.Add(ctx, "buy milk", task.PriorityHigh); !errors.Is(err, task.ErrDuplicateText) {
		t.Fatalf("Add(duplicate) error = %v, want ErrDuplicateText", err)
	}

	toggled, err := st.ToggleComplete(ctx, first.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if !toggled.Completed || toggled.CompletedAt == nil {
		t.Fatalf("task not completed: %+v", toggled)
	}

	stats := st.Stats()
	if stats.Total != 1 || stats.Active != 0 || stats.Completed != 1 {
		t.Fatalf("Stats() = %+v, want {1 0 1}", stats)
	}

	second, err := st.Add(ctx, "Buy milk", task.PriorityLow)
	if err != nil {
		t.Fatalf("Add after completing the original failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second id = %d, want 2", second.ID)
	}
}

func TestToggleMovesToEndAndBack(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	mustAdd(t, st, "one")   // id 1
	mustAdd(t, st, "two")   // id 2
	mustAdd(t, st, "three") // id 3, order is now [3 2 1]

	if _, err := st.ToggleComplete(ctx, 3); err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if got := taskIDs(st.Tasks()); !slices.Equal(got, []int64{2, 1, 3}) {
		t.Fatalf("completing should move to end, got order %v", got)
	}

	// Toggling back restores the completion state but not the position.
	back, err := st.ToggleComplete(ctx, 3)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if back.Completed || back.CompletedAt != nil {
		t.Errorf("second toggle should clear completion: %+v", back)
	}
	if got := taskIDs(st.Tasks()); !slices.Equal(got, []int64{2, 1, 3}) {
		t.Errorf("position should stay after reopening, got order %v", got)
	}
}

func TestToggleNotFound(t *testing.T) {
	st, _ := newTestStore(t)
	if _, err := st.ToggleComplete(context.Background(), 42); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("ToggleComplete() error = %v, want ErrTaskNotFound", err)
	}
}

func TestEditInvariants(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	orig := mustAdd(t, st, "tpyo")

	edited, err := st.Edit(ctx, orig.ID, "typo")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if edited.ID != orig.ID {
		t.Errorf("Edit changed id: %d -> %d", orig.ID, edited.ID)
	}
	if !edited.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("Edit changed CreatedAt: %v -> %v", orig.CreatedAt, edited.CreatedAt)
	}
	if edited.EditedAt == nil {
		t.Error("Edit did not set EditedAt")
	}
	if edited.Text != "typo" {
		t.Errorf("Text = %q, want %q", edited.Text, "typo")
	}
}

func TestEditDuplicateExcludesSelf(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	a := mustAdd(t, st, "alpha")
	mustAdd(t, st, "beta")

	// Re-saving the same text is not a duplicate of itself.
	if _, err := st.Edit(ctx, a.ID, "Alpha"); err != nil {
		t.Fatalf("Edit to own text failed: %v", err)
	}

	// But clashing with another incomplete task is.
	if _, err := st.Edit(ctx, a.ID, "BETA"); !errors.Is(err, task.ErrDuplicateText) {
		t.Errorf("Edit() error = %v, want ErrDuplicateText", err)
	}
}

func TestEditValidationAndNotFound(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	a := mustAdd(t, st, "thing")

	if _, err := st.Edit(ctx, a.ID, "  "); !errors.Is(err, task.ErrEmptyText) {
		t.Errorf("Edit() error = %v, want ErrEmptyText", err)
	}
	if _, err := st.Edit(ctx, 99, "new text"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("Edit() error = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteConfirmationRules(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	if err := st.Delete(ctx, 1, false); !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("Delete() error = %v, want ErrTaskNotFound", err)
	}

	high, err := st.Add(ctx, "urgent thing", task.PriorityHigh)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Incomplete high-priority task needs the confirmation signal.
	if err := st.Delete(ctx, high.ID, false); !errors.Is(err, task.ErrConfirmationRequired) {
		t.Fatalf("Delete() error = %v, want ErrConfirmationRequired", err)
	}
	if st.Stats().Total != 1 {
		t.Fatal("unconfirmed delete must not mutate the collection")
	}
	if err := st.Delete(ctx, high.ID, true); err != nil {
		t.Fatalf("confirmed Delete failed: %v", err)
	}

	// A completed high-priority task deletes without confirmation.
	high2, _ := st.Add(ctx, "urgent done", task.PriorityHigh)
	if _, err := st.ToggleComplete(ctx, high2.ID); err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if err := st.Delete(ctx, high2.ID, false); err != nil {
		t.Errorf("Delete of completed high-priority task failed: %v", err)
	}

	// A medium-priority task deletes without confirmation.
	med := mustAdd(t, st, "normal thing")
	if err := st.Delete(ctx, med.ID, false); err != nil {
		t.Errorf("Delete of medium task failed: %v", err)
	}
}

func TestClearCompleted(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	// Nothing to clear: no confirmation round trip needed.
	n, err := st.ClearCompleted(ctx, false)
	if n != 0 || !errors.Is(err, task.ErrNothingToClear) {
		t.Fatalf("ClearCompleted() = %d, %v, want 0, ErrNothingToClear", n, err)
	}

	a := mustAdd(t, st, "a")
	b := mustAdd(t, st, "b")
	mustAdd(t, st, "c")
	mustToggle(t, st, a.ID)
	mustToggle(t, st, b.ID)

	if _, err := st.ClearCompleted(ctx, false); !errors.Is(err, task.ErrConfirmationRequired) {
		t.Fatalf("ClearCompleted() error = %v, want ErrConfirmationRequired", err)
	}
	if st.Stats().Total != 3 {
		t.Fatal("unconfirmed clear must not mutate the collection")
	}

	n, err = st.ClearCompleted(ctx, true)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared = %d, want 2", n)
	}

	stats := st.Stats()
	if stats.Total != 1 || stats.Completed != 0 {
		t.Errorf("Stats() = %+v, want one active task left", stats)
	}
}

// TestStatsInvariant checks total == active + completed across a mixed
// operation sequence.
func TestStatsInvariant(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	check := func(step string) {
		t.Helper()
		stats := st.Stats()
		if stats.Total != len(st.Tasks()) {
			t.Fatalf("%s: total %d != collection size %d", step, stats.Total, len(st.Tasks()))
		}
		if stats.Active+stats.Completed != stats.Total {
			t.Fatalf("%s: active %d + completed %d != total %d", step, stats.Active, stats.Completed, stats.Total)
		}
	}

	check("empty")
	a := mustAdd(t, st, "a")
	b := mustAdd(t, st, "b")
	mustAdd(t, st, "c")
	check("after adds")
	mustToggle(t, st, a.ID)
	check("after toggle")
	if err := st.Delete(ctx, b.ID, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	check("after delete")
	mustToggle(t, st, a.ID)
	check("after toggle back")
}

func TestFilterViews(t *testing.T) {
	st, _ := newTestStore(t)

	a := mustAdd(t, st, "low one")
	mustAddPrio(t, st, "high one", task.PriorityHigh)
	mustAdd(t, st, "plain one")
	mustToggle(t, st, a.ID)

	wantIDs := func(kind task.Filter, want []int64) {
		t.Helper()
		var got []int64
		for tk := range st.Filter(kind) {
			got = append(got, tk.ID)
		}
		if !slices.Equal(got, want) {
			t.Errorf("Filter(%s) ids = %v, want %v", kind, got, want)
		}
	}

	// Storage order after toggle: [3 (plain), 2 (high), 1 (low, done)]
	wantIDs(task.FilterAll, []int64{3, 2, 1})
	wantIDs(task.FilterActive, []int64{3, 2})
	wantIDs(task.FilterCompleted, []int64{1})
	wantIDs(task.FilterHighPriority, []int64{2})

	// The view is restartable and never mutates storage order.
	seq := st.Filter(task.FilterActive)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(taskIDs(first), taskIDs(second)) {
		t.Error("iterating the view twice gave different results")
	}
	if got := taskIDs(st.Tasks()); !slices.Equal(got, []int64{3, 2, 1}) {
		t.Errorf("filtering mutated storage order: %v", got)
	}

	// Early break works without side effects.
	for range st.Filter(task.FilterAll) {
		break
	}
	if got := taskIDs(st.Tasks()); !slices.Equal(got, []int64{3, 2, 1}) {
		t.Errorf("breaking out of the view mutated storage order: %v", got)
	}
}

func TestSetFilterPersisted(t *testing.T) {
	ctx := context.Background()
	st, adapter := newTestStore(t)

	if err := st.SetFilter(ctx, task.FilterActive); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	if st.CurrentFilter() != task.FilterActive {
		t.Errorf("CurrentFilter() = %v, want active", st.CurrentFilter())
	}
	if adapter.meta.Filter != task.FilterActive {
		t.Errorf("persisted filter = %v, want active", adapter.meta.Filter)
	}

	if err := st.SetFilter(ctx, task.Filter("bogus")); !errors.Is(err, task.ErrInvalidFilter) {
		t.Errorf("SetFilter() error = %v, want ErrInvalidFilter", err)
	}

	// A fresh store sees the persisted filter.
	st2 := Open(ctx, adapter)
	if st2.CurrentFilter() != task.FilterActive {
		t.Errorf("reloaded filter = %v, want active", st2.CurrentFilter())
	}
}

// TestIDsNeverReused verifies the counter survives deletions.
func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	st, adapter := newTestStore(t)

	a := mustAdd(t, st, "a")
	b := mustAdd(t, st, "b")
	if err := st.Delete(ctx, a.ID, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := st.Delete(ctx, b.ID, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	c := mustAdd(t, st, "c")
	if c.ID != 3 {
		t.Errorf("id after deletions = %d, want 3", c.ID)
	}

	// The counter also survives a reload.
	st2 := Open(ctx, adapter)
	d, err := st2.Add(ctx, "d", task.PriorityMedium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if d.ID != 4 {
		t.Errorf("id after reload = %d, want 4", d.ID)
	}
}

func TestCounterCatchesUpToLiveIDs(t *testing.T) {
	ctx := context.Background()
	adapter := &memAdapter{
		tasks: []task.Task{{ID: 9, Text: "legacy", Priority: task.PriorityMedium}},
		meta:  storage.Meta{Filter: task.FilterAll, IDCounter: 2},
	}

	st := Open(ctx, adapter)
	got, err := st.Add(ctx, "new one", task.PriorityMedium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.ID != 10 {
		t.Errorf("id = %d, want 10 (above the highest live id)", got.ID)
	}
}

func TestSaveFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	st, adapter := newTestStore(t)
	adapter.failSave = true

	got, err := st.Add(ctx, "still works", task.PriorityMedium)
	if err != nil {
		t.Fatalf("Add should succeed in memory, got %v", err)
	}
	if got.ID != 1 {
		t.Errorf("id = %d, want 1", got.ID)
	}

	warn := st.SaveWarning()
	if warn == nil {
		t.Fatal("SaveWarning() = nil, want persistence failure")
	}
	if !errors.Is(warn, task.ErrPersistence) {
		t.Errorf("SaveWarning() = %v, want ErrPersistence", warn)
	}

	// Recovery clears the warning.
	adapter.failSave = false
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if st.SaveWarning() != nil {
		t.Errorf("SaveWarning() = %v after successful save, want nil", st.SaveWarning())
	}
	if len(adapter.tasks) != 1 {
		t.Errorf("flush did not persist the in-memory state")
	}
}

func TestOpenWithLoadFailureStartsEmpty(t *testing.T) {
	ctx := context.Background()
	adapter := &memAdapter{failLoad: true}

	st := Open(ctx, adapter)
	if st.Stats().Total != 0 {
		t.Errorf("store should start empty on load failure, total = %d", st.Stats().Total)
	}

	// And it keeps working.
	adapter.failLoad = false
	if _, err := st.Add(ctx, "recovered", task.PriorityMedium); err != nil {
		t.Errorf("Add after load failure failed: %v", err)
	}
}

// Helpers

func mustAdd(t *testing.T, st *Store, text string) task.Task {
	t.Helper()
	return mustAddPrio(t, st, text, task.PriorityMedium)
}

func mustAddPrio(t *testing.T, st *Store, text string, prio task.Priority) task.Task {
	t.Helper()
	tk, err := st.Add(context.Background(), text, prio)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", text, err)
	}
	return tk
}

func mustToggle(t *testing.T, st *Store, id int64) task.Task {
	t.Helper()
	tk, err := st.ToggleComplete(context.Background(), id)
	if err != nil {
		t.Fatalf("ToggleComplete(%d) failed: %v", id, err)
	}
	return tk
}

func taskIDs(tasks []task.Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func longText(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
