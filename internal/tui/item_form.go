package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	itemFieldName = iota
	itemFieldDescription
)

// itemFormModel collects a name and a description. enter on the name moves to
// the description; enter on the description submits. esc cancels.
type itemFormModel struct {
	title  string
	inputs []textinput.Model
	focus  int
	width  int
	errMsg string

	done      bool
	cancelled bool
}

func newItemFormModel(title string) itemFormModel {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "name"
	name.CharLimit = 200
	name.Focus()

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "description (markdown)"
	desc.CharLimit = 2000

	return itemFormModel{
		title:  title,
		inputs: []textinput.Model{name, desc},
		focus:  itemFieldName,
	}
}

func (m itemFormModel) Name() string        { return strings.TrimSpace(m.inputs[itemFieldName].Value()) }
func (m itemFormModel) Description() string { return strings.TrimSpace(m.inputs[itemFieldDescription].Value()) }

func (m itemFormModel) finished() bool { return m.done }

func (m itemFormModel) Init() tea.Cmd { return textinput.Blink }

func (m itemFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "ctrl+g":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			return m.setFocus(1 - m.focus), nil
		case "enter":
			if m.Name() == "" {
				m.errMsg = "name is required"
				return m.setFocus(itemFieldName), nil
			}
			if m.focus == itemFieldName {
				return m.setFocus(itemFieldDescription), nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.Name() != "" {
		m.errMsg = ""
	}
	return m, cmd
}

func (m itemFormModel) setFocus(i int) itemFormModel {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

func (m itemFormModel) View() string {
	if m.done {
		return ""
	}
	bodyW := widgetWidth(m.width)
	var b strings.Builder
	b.WriteString(styleTitle().Render(m.title) + "\n\n")
	labels := []string{"Name", "Description"}
	for i, in := range m.inputs {
		b.WriteString(renderField(labels[i], i == m.focus, bodyW, in.View()) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(styleError().Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("enter: next/submit   tab: switch field   esc: cancel") + "\n")
	return b.String()
}
