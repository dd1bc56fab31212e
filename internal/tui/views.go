package tui

import (
	"fmt"

	"github.com/Kimiya00/smart-todo-app/internal/store"
	"github.com/Kimiya00/smart-todo-app/internal/task"
)

// Row is the presentation-agnostic view model for a single task. It
// carries only display data; building one never touches the store.
type Row struct {
	ID        int64
	Text      string
	Priority  string
	Completed bool
	Indicator string
	Edited    bool
}

// NewRow maps a task onto its view model.
func NewRow(t task.Task) Row {
	indicator := IndicatorOpen
	if t.Completed {
		indicator = IndicatorDone
	}
	return Row{
		ID:        t.ID,
		Text:      t.Text,
		Priority:  string(t.Priority),
		Completed: t.Completed,
		Indicator: indicator,
		Edited:    t.EditedAt != nil,
	}
}

// NewRows maps a task slice onto view models, preserving order.
func NewRows(tasks []task.Task) []Row {
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = NewRow(t)
	}
	return rows
}

// Render renders a row as a single styled line.
func (r Row) Render(selected bool) string {
	cursor := " "
	if selected {
		cursor = IndicatorSelected
	}

	text := r.Text
	if r.Edited {
		text += " *"
	}

	line := fmt.Sprintf("%s %s [%d] %s %s",
		cursor,
		r.Indicator,
		r.ID,
		GetPriorityStyle(r.Priority).Render(fmt.Sprintf("%-6s", r.Priority)),
		text,
	)

	switch {
	case r.Completed:
		return CompletedStyle.Render(line)
	case selected:
		return SelectedStyle.Render(line)
	default:
		return line
	}
}

// StatsLine renders the stats summary shown under the list.
func StatsLine(st store.Stats) string {
	return SubtitleStyle.Render(
		fmt.Sprintf("%d total · %d active · %d completed", st.Total, st.Active, st.Completed),
	)
}

// FilterLabel renders the current filter indicator.
func FilterLabel(f task.Filter) string {
	return SubtitleStyle.Render("filter: ") + StatusMsgStyle.Render(string(f))
}
