package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jira-cli/internal/model"
	"jira-cli/internal/statusutil"
)

// statusPickerModel selects one of the four statuses. Digits outside the menu
// are ignored, so the picker keeps asking until a valid choice or esc.
type statusPickerModel struct {
	options []model.Status
	cursor  int
	width   int

	done     bool
	selected *model.Status
}

func newStatusPickerModel() statusPickerModel {
	return statusPickerModel{options: model.AllStatuses()}
}

func (m statusPickerModel) finished() bool { return m.done }

func (m statusPickerModel) Init() tea.Cmd { return nil }

func (m statusPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "esc", "ctrl+c", "ctrl+g", "q":
			m.done = true
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m.choose(m.options[m.cursor])
		}
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			if st, err := statusutil.ParseSelection(key); err == nil {
				return m.choose(st)
			}
		}
	}
	return m, nil
}

func (m statusPickerModel) choose(s model.Status) (tea.Model, tea.Cmd) {
	m.done = true
	m.selected = &s
	return m, tea.Quit
}

func (m statusPickerModel) View() string {
	if m.done {
		return ""
	}
	active := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	var b strings.Builder
	b.WriteString(styleTitle().Render("New status") + "\n\n")
	for i, line := range statusutil.MenuLines() {
		if i == m.cursor {
			b.WriteString(active.Render(fmt.Sprintf("> %s", line)) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n" + styleMuted().Width(widgetWidth(m.width)).Render("1-4 or j/k + enter   esc: cancel") + "\n")
	return b.String()
}
