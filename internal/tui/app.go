// Package tui is the interactive terminal UI: a login view and a task view
// driven by bubbletea, both talking to the service through api.Client.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/api"
)

type view int

const (
	viewLogin view = iota
	viewTasks
)

// navigateMsg switches the active view. The target view is rebuilt.
type navigateMsg struct {
	to view
}

func navigate(to view) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// stamp ties a settle message to the view instance that issued the call.
// Each open bumps the generation, so results from a replaced view are dropped.
type stamp struct {
	gen int
}

func (s stamp) generation() int { return s.gen }

type stamped interface {
	generation() int
}

// Model routes messages to the active view.
type Model struct {
	ctx    context.Context
	client *api.Client
	styles styles
	keys   keyMap

	current view
	gen     int
	login   loginModel
	tasks   tasksModel
	size    tea.WindowSizeMsg
}

// New returns the root model. It opens the task view when a session exists
// and the login view otherwise.
func New(ctx context.Context, client *api.Client) Model {
	m := Model{
		ctx:    ctx,
		client: client,
		styles: newStyles(),
		keys:   defaultKeyMap(),
	}
	if _, ok := client.Session().Username(); ok {
		m.current = viewTasks
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return navigate(m.current)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s, ok := msg.(stamped); ok && s.generation() != m.gen {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.current == viewLogin && msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case navigateMsg:
		return m.open(msg.to)
	}

	var cmd tea.Cmd
	switch m.current {
	case viewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	default:
		m.login, cmd = m.login.Update(msg)
	}
	return m, cmd
}

// open builds a fresh view and runs its Init.
func (m Model) open(to view) (tea.Model, tea.Cmd) {
	m.current = to
	m.gen++
	var cmd tea.Cmd
	switch to {
	case viewTasks:
		m.tasks = newTasksModel(m.ctx, m.gen, m.client, m.styles, m.keys)
		m.tasks, _ = m.tasks.Update(m.size)
		cmd = m.tasks.Init()
	default:
		m.login = newLoginModel(m.ctx, m.gen, m.client, m.styles, m.keys)
		m.login, _ = m.login.Update(m.size)
		cmd = m.login.Init()
	}
	return m, cmd
}

func (m Model) View() string {
	if m.current == viewTasks {
		return m.tasks.View()
	}
	return m.login.View()
}

// Run starts the UI on the terminal and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, client *api.Client, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, client), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
