package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderField draws a labelled text input. The input always occupies exactly
// one line of bodyW cells, whatever the textinput view contains.
func renderField(label string, focused bool, bodyW int, inputView string) string {
	marker := "  "
	labelStyle := styleMuted()
	if focused {
		marker = "> "
		labelStyle = lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true)
	}
	if bodyW < 10 {
		bodyW = 10
	}

	flat := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(inputView)
	line := lipgloss.NewStyle().
		Background(colorInputBg).
		Width(bodyW).
		MaxWidth(bodyW).
		Render(" " + flat)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Truncate(line, bodyW, "") + "\x1b[0m"
	}
	return marker + labelStyle.Render(label) + "\n" + line
}
