package task

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned when a task text is empty after trimming.
	ErrEmptyText = errors.New("task text is required")

	// ErrTextTooLong is returned when a task text exceeds MaxTextLen runes.
	ErrTextTooLong = errors.New("task text is too long")

	// ErrDuplicateText is returned when an incomplete task with the same
	// case-insensitive text already exists.
	ErrDuplicateText = errors.New("duplicate task text")

	// ErrTaskNotFound is returned when no task with the given id exists.
	ErrTaskNotFound = errors.New("task not found")

	// ErrImportFormat is returned when an import payload is neither an
	// envelope with a tasks array nor a bare array.
	ErrImportFormat = errors.New("invalid import format")

	// ErrNoValidTasks is returned when an import payload contains no
	// entries with a non-empty text field. It is an ErrImportFormat.
	ErrNoValidTasks = fmt.Errorf("%w: no valid tasks", ErrImportFormat)

	// ErrEmptyExport is returned when exporting an empty collection.
	ErrEmptyExport = errors.New("no tasks to export")

	// ErrConfirmationRequired is returned when a destructive operation
	// needs an external confirmation signal before it proceeds.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrNothingToClear is returned when there are no completed tasks
	// to clear.
	ErrNothingToClear = errors.New("no completed tasks to clear")

	// ErrPersistence wraps storage read/write failures. The store treats
	// these as non-fatal and keeps operating in memory.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidPriority is returned when parsing an unknown priority.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidFilter is returned when parsing an unknown filter kind.
	ErrInvalidFilter = errors.New("invalid filter")
)

// IsValidation reports whether err is a text validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrTextTooLong)
}
