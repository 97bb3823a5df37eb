package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("203")
	colorDone   = lipgloss.Color("78")
)

// styles groups the lipgloss styles shared by the views.
type styles struct {
	App     lipgloss.Style
	Title   lipgloss.Style
	Navbar  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
	Header  lipgloss.Style
	Cursor  lipgloss.Style
	Done    lipgloss.Style
	Pending lipgloss.Style
	Struck  lipgloss.Style
	Focused lipgloss.Style
	Blurred lipgloss.Style
	Confirm lipgloss.Style
}

func newStyles() styles {
	return styles{
		App:     lipgloss.NewStyle().Padding(1, 2),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Navbar:  lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorMuted),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Status:  lipgloss.NewStyle().Foreground(colorDone),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorMuted),
		Cursor:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Done:    lipgloss.NewStyle().Foreground(colorDone),
		Pending: lipgloss.NewStyle().Foreground(colorMuted),
		Struck:  lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted),
		Focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Blurred: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
		Confirm: lipgloss.NewStyle().Bold(true).Foreground(colorError),
	}
}
