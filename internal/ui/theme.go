package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"jira-cli/internal/model"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorChrome  lipgloss.TerminalColor = ac("240", "245")
	colorAccent  lipgloss.TerminalColor = ac("27", "62")
	colorWarning lipgloss.TerminalColor = ac("160", "203")

	colorStatusOpen       lipgloss.TerminalColor = ac("27", "75")
	colorStatusInProgress lipgloss.TerminalColor = ac("130", "214")
	colorStatusResolved   lipgloss.TerminalColor = ac("28", "114")
	colorStatusClosed     lipgloss.TerminalColor = ac("241", "245")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSection() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleTableHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorChrome).Bold(true)
}

func styleWarning() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
}

func statusStyle(s model.Status) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch s {
	case model.StatusOpen:
		return st.Foreground(colorStatusOpen)
	case model.StatusInProgress:
		return st.Foreground(colorStatusInProgress).Bold(true)
	case model.StatusResolved:
		return st.Foreground(colorStatusResolved)
	case model.StatusClosed:
		return faintIfDark(st.Foreground(colorStatusClosed))
	}
	return st
}

// ApplyColorProfile picks the lipgloss color profile for page output.
// NO_COLOR forces plain text; otherwise TERM/COLORTERM may upgrade what
// termenv detected.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// ApplyThemePreference honors JIRA_TUI_THEME=light|dark; anything else keeps
// lipgloss's own background detection.
func ApplyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("JIRA_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}
