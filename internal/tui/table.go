package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskman/internal/service"
)

// placeholderRow is shown when the list is empty.
const placeholderRow = "No tasks found. Add a new task to get started!"

type rowAction int

const (
	actionToggle rowAction = iota
	actionEdit
	actionDelete
	actionCopy
)

// rowActionMsg is emitted by the table for the task under the cursor.
type rowActionMsg struct {
	Action rowAction
	ID     string
}

// taskTable renders one row per task and turns row keys into rowActionMsg.
// It holds no task state of its own beyond what the parent hands it.
type taskTable struct {
	tasks   []service.Task
	cursor  int
	focused bool
	width   int
	keys    keyMap
}

func newTaskTable(keys keyMap) taskTable {
	return taskTable{keys: keys, width: 60}
}

// SetTasks replaces the rows, keeping the cursor in range.
func (t *taskTable) SetTasks(tasks []service.Task) {
	t.tasks = tasks
	t.cursor = clamp(t.cursor, 0, len(tasks)-1)
}

func (t *taskTable) SetWidth(w int) {
	if w > 20 {
		t.width = w
	}
}

func (t *taskTable) Focus() { t.focused = true }
func (t *taskTable) Blur()  { t.focused = false }

// Selected returns the task under the cursor.
func (t taskTable) Selected() (service.Task, bool) {
	if len(t.tasks) == 0 {
		return service.Task{}, false
	}
	return t.tasks[t.cursor], true
}

func (t taskTable) Update(msg tea.KeyMsg) (taskTable, tea.Cmd) {
	switch {
	case key.Matches(msg, t.keys.Up):
		t.cursor = clamp(t.cursor-1, 0, len(t.tasks)-1)
		return t, nil
	case key.Matches(msg, t.keys.Down):
		t.cursor = clamp(t.cursor+1, 0, len(t.tasks)-1)
		return t, nil
	case key.Matches(msg, t.keys.Toggle):
		return t, t.action(actionToggle)
	case key.Matches(msg, t.keys.Edit):
		return t, t.action(actionEdit)
	case key.Matches(msg, t.keys.Delete):
		return t, t.action(actionDelete)
	case key.Matches(msg, t.keys.Copy):
		return t, t.action(actionCopy)
	}
	return t, nil
}

func (t taskTable) action(a rowAction) tea.Cmd {
	task, ok := t.Selected()
	if !ok {
		return nil
	}
	id := task.ID
	return func() tea.Msg { return rowActionMsg{Action: a, ID: id} }
}

func (t taskTable) View(st styles) string {
	statusWidth := len("Completed")
	titleWidth := t.width - statusWidth - 6

	var b strings.Builder
	b.WriteString(st.Header.Render(fmt.Sprintf("  %-*s  %s", titleWidth, "Title", "Status")))
	b.WriteString("\n")

	if len(t.tasks) == 0 {
		b.WriteString(st.Muted.Render("  " + placeholderRow))
		return b.String()
	}

	for i, task := range t.tasks {
		marker := "  "
		if t.focused && i == t.cursor {
			marker = st.Cursor.Render("> ")
		}

		title := truncate(task.Title, titleWidth)
		pad := strings.Repeat(" ", max(0, titleWidth-lipgloss.Width(title)))
		status := st.Pending.Render(task.Status())
		if task.Completed {
			title = st.Struck.Render(title)
			status = st.Done.Render(task.Status())
		}

		b.WriteString(marker + title + pad + "  " + status)
		if i < len(t.tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// clamp returns val clamped between lo and hi; hi < lo yields lo.
func clamp(val, lo, hi int) int {
	if val > hi {
		val = hi
	}
	if val < lo {
		val = lo
	}
	return val
}
