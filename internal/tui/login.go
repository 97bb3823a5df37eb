package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/api"
	"taskman/internal/service"
	"taskman/internal/validate"
)

type loginState int

const (
	loginIdle loginState = iota
	loginSubmitting
)

// loginDoneMsg settles a login call.
type loginDoneMsg struct {
	stamp
	Username string
	Result   api.Result[string]
}

// loginModel asks for a username, logs in and persists the session.
type loginModel struct {
	gen     int
	ctx     context.Context
	client  *api.Client
	styles  styles
	keys    keyMap
	input   textinput.Model
	spinner spinner.Model
	state   loginState
	err     string
	width   int
}

func newLoginModel(ctx context.Context, gen int, client *api.Client, st styles, keys keyMap) loginModel {
	ti := textinput.New()
	ti.Placeholder = "username"
	ti.CharLimit = validate.UsernameMax * 2
	ti.Width = 30
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Title

	return loginModel{gen: gen, ctx: ctx, client: client, styles: st, keys: keys, input: ti, spinner: sp}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != loginSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginDoneMsg:
		return m.settle(msg)

	case tea.KeyMsg:
		if m.state == loginSubmitting {
			return m, nil
		}
		if key.Matches(msg, m.keys.Submit) {
			return m.submit()
		}
	}

	if m.state == loginSubmitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates locally and starts exactly one login call.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.input.Value())
	if err := validate.Username(username); err != nil {
		m.err = service.Message(err)
		return m, nil
	}

	m.err = ""
	m.state = loginSubmitting
	m.input.Blur()

	tag, ctx, client := stamp{m.gen}, m.ctx, m.client
	call := func() tea.Msg {
		return loginDoneMsg{stamp: tag, Username: username, Result: client.Login(ctx, username)}
	}
	return m, tea.Batch(call, m.spinner.Tick)
}

func (m loginModel) settle(msg loginDoneMsg) (loginModel, tea.Cmd) {
	m.state = loginIdle
	m.input.Focus()

	if !msg.Result.Success {
		m.err = msg.Result.Error
		return m, nil
	}
	if err := m.client.Session().Save(msg.Username); err != nil {
		m.err = "Could not save session: " + err.Error()
		return m, nil
	}
	return m, navigate(viewTasks)
}

func (m loginModel) View() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(navbar(st, "", m.width))
	b.WriteString("\n\n")
	b.WriteString(st.Header.Render("Login"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.state == loginSubmitting {
		b.WriteString(m.spinner.View() + " Logging in...")
	} else {
		b.WriteString(st.Muted.Render("enter log in · ctrl+c quit"))
	}
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(st.Error.Render(m.err))
	}
	return st.App.Render(b.String())
}
