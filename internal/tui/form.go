package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/service"
	"taskman/internal/validate"
)

// formSubmitMsg carries a validated title to the parent.
type formSubmitMsg struct {
	Title   string
	Editing bool
}

// formCancelMsg asks the parent to leave editing mode.
type formCancelMsg struct{}

// taskForm is the single-input task entry form. The parent controls its
// value and editing flag through Load and Reset; the form only reports
// submit and cancel.
type taskForm struct {
	input    textinput.Model
	editing  bool
	disabled bool
	err      string
	keys     keyMap
}

func newTaskForm(keys keyMap) taskForm {
	ti := textinput.New()
	ti.Placeholder = "Add a new task"
	ti.CharLimit = validate.TitleMax * 2
	ti.Width = 50
	ti.Cursor.SetMode(cursor.CursorStatic)
	return taskForm{input: ti, keys: keys}
}

// Load fills the input and sets the editing flag.
func (f *taskForm) Load(title string, editing bool) {
	f.input.SetValue(title)
	f.input.CursorEnd()
	f.editing = editing
	f.err = ""
}

// Reset clears the input and leaves editing mode.
func (f *taskForm) Reset() {
	f.Load("", false)
}

// SetDisabled blocks submission while the parent has a call in flight.
func (f *taskForm) SetDisabled(disabled bool) {
	f.disabled = disabled
}

func (f *taskForm) Focus() { f.input.Focus() }
func (f *taskForm) Blur()  { f.input.Blur() }

func (f taskForm) Value() string { return f.input.Value() }
func (f taskForm) Editing() bool { return f.editing }
func (f taskForm) Error() string { return f.err }

func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.Submit):
			if f.disabled {
				return f, nil
			}
			title := strings.TrimSpace(f.input.Value())
			if err := validate.Title(title); err != nil {
				f.err = service.Message(err)
				return f, nil
			}
			f.err = ""
			editing := f.editing
			return f, func() tea.Msg { return formSubmitMsg{Title: title, Editing: editing} }
		case key.Matches(msg, f.keys.Cancel):
			if !f.editing {
				return f, nil
			}
			f.err = ""
			return f, func() tea.Msg { return formCancelMsg{} }
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f taskForm) View(st styles) string {
	label := "New task"
	button := "[enter] Add"
	if f.editing {
		label = "Edit task"
		button = "[enter] Save  [esc] Cancel"
	}
	if f.disabled {
		button = st.Muted.Render(button)
	}

	var b strings.Builder
	b.WriteString(st.Header.Render(label))
	b.WriteString("\n")
	b.WriteString(f.input.View())
	b.WriteString("  ")
	b.WriteString(button)
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(st.Error.Render(f.err))
	}

	box := st.Blurred
	if f.input.Focused() {
		box = st.Focused
	}
	return box.Render(b.String())
}
