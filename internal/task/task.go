// Package task defines the task data model shared by the store, the
// persistence adapters and the presentation layer.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLen is the maximum task text length in runes, after trimming.
const MaxTextLen = 200

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when no priority is given or the given one is
// not recognized (tolerant import path).
const DefaultPriority = PriorityMedium

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority parses a priority string, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// Filter is a named view over the task collection.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterActive       Filter = "active"
	FilterCompleted    Filter = "completed"
	FilterHighPriority Filter = "high-priority"
)

// IsValid reports whether f is a known filter kind.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterHighPriority:
		return true
	default:
		return false
	}
}

// ParseFilter parses a filter kind, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}

// Matches reports whether t belongs to the view named by f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHighPriority:
		return t.Priority == PriorityHigh
	default:
		return true
	}
}

// Task is an individual todo item.
//
// CompletedAt is set when the task transitions to completed and cleared
// when it transitions back. EditedAt is set whenever the text is changed
// after creation. Extra holds unknown fields from imported payloads so
// they survive a save/export round trip.
type Task struct {
	ID          int64
	Text        string
	Completed   bool
	Priority    Priority
	CreatedAt   time.Time
	CompletedAt *time.Time
	EditedAt    *time.Time
	Extra       map[string]json.RawMessage
}

// ValidateText trims s and validates it as task text.
// It returns the trimmed text on success.
func ValidateText(s string) (string, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return "", fmt.Errorf("%w: %d runes (max %d)", ErrTextTooLong, utf8.RuneCountInString(text), MaxTextLen)
	}
	return text, nil
}

// SameText reports whether two task texts collide under the duplicate
// rule: case-insensitive equality of the trimmed text.
func SameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
