package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// navbar renders the title, the signed-in user and the logout hint.
func navbar(st styles, username string, width int) string {
	left := st.Title.Render("taskman")
	right := st.Muted.Render("signed in as ") + username + st.Muted.Render("  ·  L logout")
	if username == "" {
		right = ""
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return st.Navbar.Render(left + strings.Repeat(" ", gap) + right)
}
