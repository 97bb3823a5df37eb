package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/api"
	"taskman/internal/service"
)

// focusArea is the part of the task view receiving keys.
type focusArea int

const (
	focusForm focusArea = iota
	focusTable
)

type (
	tasksLoadedMsg struct {
		stamp
		Result api.Result[[]service.Task]
	}
	taskCreatedMsg struct {
		stamp
		Result api.Result[service.Task]
	}
	taskUpdatedMsg struct {
		stamp
		Result api.Result[service.Task]
	}
	taskToggledMsg struct {
		stamp
		ID     string
		Result api.Result[service.Task]
	}
	taskDeletedMsg struct {
		stamp
		ID     string
		Result api.Result[string]
	}
	copiedMsg struct {
		stamp
		Err error
	}
)

// tasksModel is the task view. At most one API call is in flight (busy);
// mutating keys are ignored until it settles.
type tasksModel struct {
	gen      int
	ctx      context.Context
	client   *api.Client
	username string
	styles   styles
	keys     keyMap

	tasks   []service.Task
	form    taskForm
	table   taskTable
	spinner spinner.Model
	help    help.Model
	focus   focusArea

	loading   bool
	busy      bool
	err       string
	notice    string
	editingID string
	confirmID string
	width     int

	copyText func(string) error
}

func newTasksModel(ctx context.Context, gen int, client *api.Client, st styles, keys keyMap) tasksModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Title

	m := tasksModel{
		gen:      gen,
		ctx:      ctx,
		client:   client,
		styles:   st,
		keys:     keys,
		tasks:    []service.Task{},
		form:     newTaskForm(keys),
		table:    newTaskTable(keys),
		spinner:  sp,
		help:     help.New(),
		copyText: clipboard.WriteAll,
	}
	m.form.Focus()
	return m
}

// Init redirects to login when there is no session. Otherwise it loads the list.
func (m *tasksModel) Init() tea.Cmd {
	username, ok := m.client.Session().Username()
	if !ok {
		return navigate(viewLogin)
	}
	m.username = username
	return m.fetch(true)
}

// fetch starts a full list reload. A rollback reload keeps the error that
// caused it on screen.
func (m *tasksModel) fetch(clearErr bool) tea.Cmd {
	if clearErr {
		m.err = ""
	}
	m.loading = true
	m.setBusy(true)

	tag, ctx, client, username := stamp{m.gen}, m.ctx, m.client, m.username
	call := func() tea.Msg {
		return tasksLoadedMsg{stamp: tag, Result: client.ListTasks(ctx, username)}
	}
	return tea.Batch(call, m.spinner.Tick)
}

func (m *tasksModel) setBusy(busy bool) {
	m.busy = busy
	m.form.SetDisabled(busy)
}

// start begins a mutating call.
func (m *tasksModel) start(call tea.Cmd) tea.Cmd {
	m.err = ""
	m.notice = ""
	m.setBusy(true)
	return tea.Batch(call, m.spinner.Tick)
}

func (m tasksModel) Update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetWidth(msg.Width - 4)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		m.loading = false
		m.setBusy(false)
		if !msg.Result.Success {
			m.err = msg.Result.Error
		}
		m.setTasks(msg.Result.Data)
		return m, nil

	case taskCreatedMsg:
		if !msg.Result.Success {
			m.setBusy(false)
			m.err = msg.Result.Error
			return m, nil
		}
		m.form.Reset()
		cmd := m.fetch(true)
		return m, cmd

	case taskUpdatedMsg:
		if !msg.Result.Success {
			m.setBusy(false)
			m.err = msg.Result.Error
			return m, nil
		}
		m.editingID = ""
		m.form.Reset()
		cmd := m.fetch(true)
		return m, cmd

	case taskToggledMsg:
		if !msg.Result.Success {
			m.err = msg.Result.Error
			cmd := m.fetch(false)
			return m, cmd
		}
		m.replace(msg.Result.Data)
		m.setBusy(false)
		return m, nil

	case taskDeletedMsg:
		if !msg.Result.Success {
			m.err = msg.Result.Error
			cmd := m.fetch(false)
			return m, cmd
		}
		m.setBusy(false)
		return m, nil

	case copiedMsg:
		if msg.Err != nil {
			m.err = "Could not copy: " + msg.Err.Error()
		} else {
			m.notice = "Copied to clipboard"
		}
		return m, nil

	case formSubmitMsg:
		return m.submit(msg)

	case formCancelMsg:
		m.editingID = ""
		m.form.Reset()
		return m, nil

	case rowActionMsg:
		return m.rowAction(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tasksModel) handleKey(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if m.confirmID != "" {
		return m.handleConfirm(msg)
	}

	if key.Matches(msg, m.keys.Tab) {
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.notice = ""
		cmd := m.fetch(true)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *tasksModel) toggleFocus() {
	if m.focus == focusForm {
		m.setFocus(focusTable)
	} else {
		m.setFocus(focusForm)
	}
}

func (m *tasksModel) setFocus(area focusArea) {
	m.focus = area
	if area == focusForm {
		m.table.Blur()
		m.form.Focus()
		return
	}
	m.form.Blur()
	m.table.Focus()
}

func (m tasksModel) handleConfirm(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.confirmID
		m.confirmID = ""
		if m.busy {
			return m, nil
		}
		m.remove(id)
		tag, ctx, client := stamp{m.gen}, m.ctx, m.client
		cmd := m.start(func() tea.Msg {
			return taskDeletedMsg{stamp: tag, ID: id, Result: client.DeleteTask(ctx, id)}
		})
		return m, cmd
	case key.Matches(msg, m.keys.No):
		m.confirmID = ""
	}
	return m, nil
}

func (m tasksModel) submit(msg formSubmitMsg) (tasksModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	username, ok := m.client.Session().Username()
	if !ok {
		return m, navigate(viewLogin)
	}
	tag, ctx, client := stamp{m.gen}, m.ctx, m.client

	if msg.Editing && m.editingID != "" {
		task, found := m.find(m.editingID)
		if !found {
			m.editingID = ""
			m.form.Reset()
			return m, nil
		}
		id, completed := task.ID, task.Completed
		cmd := m.start(func() tea.Msg {
			return taskUpdatedMsg{stamp: tag, Result: client.UpdateTask(ctx, id, msg.Title, completed)}
		})
		return m, cmd
	}

	cmd := m.start(func() tea.Msg {
		return taskCreatedMsg{stamp: tag, Result: client.CreateTask(ctx, msg.Title, username)}
	})
	return m, cmd
}

func (m tasksModel) rowAction(msg rowActionMsg) (tasksModel, tea.Cmd) {
	task, found := m.find(msg.ID)
	if !found {
		return m, nil
	}

	if msg.Action == actionCopy {
		tag, title, copyText := stamp{m.gen}, task.Title, m.copyText
		return m, func() tea.Msg { return copiedMsg{stamp: tag, Err: copyText(title)} }
	}
	if m.busy {
		return m, nil
	}

	switch msg.Action {
	case actionToggle:
		cmd := m.toggle(task)
		return m, cmd
	case actionEdit:
		m.editingID = task.ID
		m.form.Load(task.Title, true)
		m.setFocus(focusForm)
		return m, nil
	case actionDelete:
		m.confirmID = task.ID
		return m, nil
	}
	return m, nil
}

// toggle flips the row at once and asks the server. A pending task goes
// through the complete endpoint; reopening is a full update.
func (m *tasksModel) toggle(task service.Task) tea.Cmd {
	flipped := task
	flipped.Completed = !task.Completed
	m.replace(flipped)

	tag, ctx, client, id := stamp{m.gen}, m.ctx, m.client, task.ID
	if !task.Completed {
		return m.start(func() tea.Msg {
			return taskToggledMsg{stamp: tag, ID: id, Result: client.CompleteTask(ctx, id)}
		})
	}
	title := task.Title
	return m.start(func() tea.Msg {
		return taskToggledMsg{stamp: tag, ID: id, Result: client.UpdateTask(ctx, id, title, false)}
	})
}

// logout clears the session without calling the service.
func (m tasksModel) logout() (tasksModel, tea.Cmd) {
	if err := m.client.Session().Clear(); err != nil {
		m.err = "Could not clear session: " + err.Error()
		return m, nil
	}
	return m, navigate(viewLogin)
}

func (m *tasksModel) setTasks(tasks []service.Task) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	m.tasks = tasks
	m.table.SetTasks(m.tasks)
}

func (m *tasksModel) find(id string) (service.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// replace swaps in task by ID on a fresh slice.
func (m *tasksModel) replace(task service.Task) {
	next := make([]service.Task, len(m.tasks))
	for i, t := range m.tasks {
		if t.ID == task.ID {
			t = task
		}
		next[i] = t
	}
	m.setTasks(next)
}

func (m *tasksModel) remove(id string) {
	next := make([]service.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	m.setTasks(next)
}

func (m tasksModel) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(navbar(st, m.username, m.width))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(st))
	b.WriteString("\n\n")

	if m.loading && len(m.tasks) == 0 {
		b.WriteString(m.spinner.View() + " Loading tasks...")
	} else {
		b.WriteString(m.table.View(st))
	}
	b.WriteString("\n\n")

	switch {
	case m.confirmID != "":
		task, _ := m.find(m.confirmID)
		b.WriteString(st.Confirm.Render(fmt.Sprintf("Delete %q? (y/n)", task.Title)))
		b.WriteString("\n")
	case m.busy:
		b.WriteString(m.spinner.View() + " Working...\n")
	}
	if m.err != "" {
		b.WriteString(st.Error.Render(m.err))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(st.Status.Render(m.notice))
		b.WriteString("\n")
	}

	if m.focus == focusForm {
		b.WriteString(m.help.View(formKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return st.App.Render(b.String())
}
