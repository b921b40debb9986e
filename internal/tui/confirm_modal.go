package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// confirmModel asks a yes/no question. Focus starts on the cancel button so a
// stray enter never deletes anything.
type confirmModel struct {
	title        string
	body         string
	confirmLabel string
	cancelLabel  string
	focus        confirmModalFocus
	width        int

	done      bool
	confirmed bool
}

func newConfirmModel(title, body string) confirmModel {
	return confirmModel{
		title:        title,
		body:         body,
		confirmLabel: "Delete",
		cancelLabel:  "Cancel",
		focus:        confirmFocusCancel,
	}
}

func (m confirmModel) finished() bool { return m.done }

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			return m.finish(true)
		case "n", "N", "esc", "ctrl+c", "ctrl+g":
			return m.finish(false)
		case "tab", "shift+tab", "left", "right", "h", "l":
			if m.focus == confirmFocusConfirm {
				m.focus = confirmFocusCancel
			} else {
				m.focus = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			return m.finish(m.focus == confirmFocusConfirm)
		}
	}
	return m, nil
}

func (m confirmModel) finish(confirmed bool) (tea.Model, tea.Cmd) {
	m.done = true
	m.confirmed = confirmed
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return renderConfirmModal(m.width, m.title, m.body, m.confirmLabel, m.cancelLabel, m.focus)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := widgetWidth(width)
	help := styleMuted().Width(bodyW).Render("y/n   tab: focus   enter: select   esc: cancel")

	return strings.Join([]string{
		styleTitle().Render(title),
		"",
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n") + "\n"
}
