package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"jira-cli/internal/model"
	"jira-cli/internal/navigator"
)

// programRunner runs a model to completion and returns its final state.
type programRunner func(m tea.Model) (tea.Model, error)

// NewPrompts wires the bubbletea widgets into navigator.Prompts. Each prompt
// runs as its own short-lived program on in/out.
func NewPrompts(in io.Reader, out io.Writer) navigator.Prompts {
	run := func(m tea.Model) (tea.Model, error) {
		p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
		return p.Run()
	}
	return promptsWith(run)
}

// NewLinePrompts drives the same widgets from newline-terminated input read
// through r, for sessions whose input is not a terminal. Pass the same reader
// to Run so the driver and the prompts consume one stream. End of input
// cancels the open prompt.
func NewLinePrompts(r *bufio.Reader, out io.Writer) navigator.Prompts {
	return promptsWith(lineRunner(r, out))
}

// widget is a prompt model that reports when it has an answer.
type widget interface {
	tea.Model
	finished() bool
}

// lineRunner feeds one input line per step: each rune is sent as a key, a tab
// as the tab key, and the line ends with enter. The widget view is written to
// out before every line it waits for.
func lineRunner(r *bufio.Reader, out io.Writer) programRunner {
	return func(m tea.Model) (tea.Model, error) {
		w, ok := m.(widget)
		if !ok {
			return m, fmt.Errorf("line prompt: unsupported model %T", m)
		}
		for !w.finished() {
			fmt.Fprint(out, w.View())
			line, readErr := r.ReadString('\n')
			if readErr != nil && !errors.Is(readErr, io.EOF) {
				return w, fmt.Errorf("line prompt: %w", readErr)
			}
			line = strings.TrimRight(line, "\r\n")
			if readErr != nil && line == "" {
				return step(w, tea.KeyMsg{Type: tea.KeyEsc})
			}
			for _, msg := range lineKeys(line) {
				if w.finished() {
					break
				}
				var err error
				if w, err = step(w, msg); err != nil {
					return w, err
				}
			}
			if readErr != nil && !w.finished() {
				return step(w, tea.KeyMsg{Type: tea.KeyEsc})
			}
		}
		return w, nil
	}
}

func step(w widget, msg tea.Msg) (widget, error) {
	next, _ := w.Update(msg)
	nw, ok := next.(widget)
	if !ok {
		return w, fmt.Errorf("line prompt: unexpected model %T", next)
	}
	return nw, nil
}

func lineKeys(line string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(line)+1)
	for _, r := range line {
		switch r {
		case '\t':
			keys = append(keys, tea.KeyMsg{Type: tea.KeyTab})
		case ' ':
			keys = append(keys, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	return append(keys, tea.KeyMsg{Type: tea.KeyEnter})
}

func promptsWith(run programRunner) navigator.Prompts {
	return navigator.Prompts{
		CreateEpic: func() (*model.Epic, error) {
			name, desc, ok, err := runItemForm(run, "New epic")
			if err != nil || !ok {
				return nil, err
			}
			e := model.NewEpic(name, desc)
			return &e, nil
		},
		CreateStory: func() (*model.Story, error) {
			name, desc, ok, err := runItemForm(run, "New story")
			if err != nil || !ok {
				return nil, err
			}
			s := model.NewStory(name, desc)
			return &s, nil
		},
		UpdateStatus: func() (*model.Status, error) {
			final, err := run(newStatusPickerModel())
			if err != nil {
				return nil, fmt.Errorf("status picker: %w", err)
			}
			m, ok := final.(statusPickerModel)
			if !ok {
				return nil, fmt.Errorf("status picker: unexpected model %T", final)
			}
			return m.selected, nil
		},
		DeleteEpic: func() (bool, error) {
			return runConfirm(run, "Delete epic?", "All stories in this epic will also be deleted.")
		},
		DeleteStory: func() (bool, error) {
			return runConfirm(run, "Delete story?", "The story will be removed from its epic.")
		},
	}
}

func runItemForm(run programRunner, title string) (name, desc string, ok bool, err error) {
	final, err := run(newItemFormModel(title))
	if err != nil {
		return "", "", false, fmt.Errorf("%s form: %w", title, err)
	}
	m, isForm := final.(itemFormModel)
	if !isForm {
		return "", "", false, fmt.Errorf("%s form: unexpected model %T", title, final)
	}
	if m.cancelled || !m.done {
		return "", "", false, nil
	}
	return m.Name(), m.Description(), true, nil
}

func runConfirm(run programRunner, title, body string) (bool, error) {
	final, err := run(newConfirmModel(title, body))
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("confirm: unexpected model %T", final)
	}
	return m.done && m.confirmed, nil
}
