package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kimiya00/smart-todo-app/internal/store"
	"github.com/Kimiya00/smart-todo-app/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeConfirmClear
)

// filterCycle is the order the f key steps through.
var filterCycle = []task.Filter{
	task.FilterAll,
	task.FilterActive,
	task.FilterCompleted,
	task.FilterHighPriority,
}

// Model is the Bubbletea model for the interactive task list. It holds
// a reference to the store; all mutations go through it.
type Model struct {
	store  *store.Store
	input  textinput.Model
	mode   mode
	cursor int
	editID int64
	delID  int64
	status string
	errMsg string
}

// New creates a TUI model backed by the given store.
func New(st *store.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "task text"
	ti.CharLimit = task.MaxTextLen
	return Model{store: st, input: ti}
}

// Run starts the interactive task list and blocks until it exits.
// The store is flushed on the way out.
func Run(st *store.Store) error {
	p := tea.NewProgram(New(st), tea.WithAltScreen())
	_, err := p.Run()
	if ferr := st.Flush(context.Background()); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.updateInput(keyMsg)
	case modeConfirmDelete, modeConfirmClear:
		return m.updateConfirm(keyMsg)
	default:
		return m.updateList(keyMsg)
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	rows := m.visible()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case "a":
		m.mode = modeAdd
		m.input.Reset()
		m.input.Focus()
		m.status, m.errMsg = "", ""

	case "e":
		if t, ok := m.selected(rows); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.input.SetValue(t.Text)
			m.input.Focus()
			m.status, m.errMsg = "", ""
		}

	case " ", "enter":
		if t, ok := m.selected(rows); ok {
			if toggled, err := m.store.ToggleComplete(ctx, t.ID); err != nil {
				m.errMsg = err.Error()
			} else if toggled.Completed {
				m.status = fmt.Sprintf("completed: %s", toggled.Text)
			} else {
				m.status = fmt.Sprintf("reopened: %s", toggled.Text)
			}
		}

	case "d":
		if t, ok := m.selected(rows); ok {
			err := m.store.Delete(ctx, t.ID, false)
			switch {
			case errors.Is(err, task.ErrConfirmationRequired):
				m.mode = modeConfirmDelete
				m.delID = t.ID
			case err != nil:
				m.errMsg = err.Error()
			default:
				m.status = fmt.Sprintf("deleted: %s", t.Text)
			}
		}

	case "c":
		_, err := m.store.ClearCompleted(ctx, false)
		switch {
		case errors.Is(err, task.ErrNothingToClear):
			m.status = "no completed tasks to clear"
		case errors.Is(err, task.ErrConfirmationRequired):
			m.mode = modeConfirmClear
		case err != nil:
			m.errMsg = err.Error()
		}

	case "f":
		next := filterCycle[0]
		for i, f := range filterCycle {
			if f == m.store.CurrentFilter() {
				next = filterCycle[(i+1)%len(filterCycle)]
				break
			}
		}
		if err := m.store.SetFilter(ctx, next); err != nil {
			m.errMsg = err.Error()
		}
		m.cursor = 0
	}

	m.clampCursor()
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case "enter":
		text := m.input.Value()
		var err error
		if m.mode == modeEdit {
			_, err = m.store.Edit(ctx, m.editID, text)
		} else {
			_, err = m.store.Add(ctx, text, task.DefaultPriority)
		}
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.mode = modeList
		m.input.Blur()
		m.errMsg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "y", "Y":
		if m.mode == modeConfirmDelete {
			if err := m.store.Delete(ctx, m.delID, true); err != nil {
				m.errMsg = err.Error()
			} else {
				m.status = "task deleted"
			}
		} else {
			if n, err := m.store.ClearCompleted(ctx, true); err != nil {
				m.errMsg = err.Error()
			} else {
				m.status = fmt.Sprintf("cleared %d completed tasks", n)
			}
		}
		m.mode = modeList
	case "n", "N", "esc":
		m.mode = modeList
		m.status = "cancelled"
	}

	m.clampCursor()
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("smart-todo"))
	b.WriteString("  ")
	b.WriteString(FilterLabel(m.store.CurrentFilter()))
	b.WriteString("\n\n")

	rows := m.visible()
	if len(rows) == 0 {
		b.WriteString(SubtitleStyle.Render("  nothing here"))
		b.WriteString("\n")
	}
	for i, r := range NewRows(rows) {
		b.WriteString(r.Render(i == m.cursor && m.mode == modeList))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StatsLine(m.store.Stats()))
	b.WriteString("\n")

	if warn := m.store.SaveWarning(); warn != nil {
		b.WriteString(WarningStyle.Render("⚠ changes are not being saved: " + warn.Error()))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\nadd: " + m.input.View() + "\n")
	case modeEdit:
		b.WriteString("\nedit: " + m.input.View() + "\n")
	case modeConfirmDelete:
		b.WriteString("\n" + WarningStyle.Render("delete high-priority task? (y/n)") + "\n")
	case modeConfirmClear:
		b.WriteString("\n" + WarningStyle.Render("clear all completed tasks? (y/n)") + "\n")
	}

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg) + "\n")
	} else if m.status != "" {
		b.WriteString(StatusMsgStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpLine())
	return b.String()
}

// visible returns the tasks under the current filter.
func (m Model) visible() []task.Task {
	return m.store.Filtered()
}

// selected returns the task under the cursor, if any.
func (m Model) selected(rows []task.Task) (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(rows) {
		return task.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func helpLine() string {
	keys := []struct{ key, desc string }{
		{"a", "add"},
		{"e", "edit"},
		{"space", "toggle"},
		{"d", "delete"},
		{"c", "clear done"},
		{"f", "filter"},
		{"q", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = HelpKeyStyle.Render(k.key) + HelpTextStyle.Render(" "+k.desc)
	}
	return strings.Join(parts, HelpTextStyle.Render(" · "))
}
