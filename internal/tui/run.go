package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"

	"jira-cli/internal/navigator"
)

type runConfig struct {
	clear  bool
	errOut io.Writer
	log    *slog.Logger
}

type RunOption func(*runConfig)

// WithoutClear keeps previous frames on screen, for scripted sessions.
func WithoutClear() RunOption {
	return func(c *runConfig) { c.clear = false }
}

func WithErrorOutput(w io.Writer) RunOption {
	return func(c *runConfig) {
		if w != nil {
			c.errOut = w
		}
	}
}

func WithLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Run drives the session: draw the current page, read one line, hand it to
// the page and any resulting action to the navigator. It returns nil when the
// page stack empties or input reaches EOF. Any other failure is printed to
// the error output and returned. A *bufio.Reader passed as in is read
// directly, so line prompts built on it share the stream.
func Run(nav *navigator.Navigator, in io.Reader, out io.Writer, opts ...RunOption) error {
	cfg := runConfig{clear: true, errOut: out, log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	term := termenv.NewOutput(out)
	r, ok := in.(*bufio.Reader)
	if !ok {
		r = bufio.NewReader(in)
	}

	for {
		page := nav.CurrentPage()
		if page == nil {
			cfg.log.Debug("page stack empty, exiting")
			return nil
		}
		if cfg.clear {
			term.ClearScreen()
		}
		if err := page.Draw(out); err != nil {
			return cfg.fail("failed to render page", err)
		}

		line, err := r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return cfg.fail("failed to read input", err)
			}
			if strings.TrimSpace(line) == "" {
				cfg.log.Debug("input closed, exiting")
				return nil
			}
		}
		line = strings.TrimSpace(line)

		action, err := page.HandleInput(line)
		if err != nil {
			return cfg.fail(fmt.Sprintf("failed to handle input %q", line), err)
		}
		if action == nil {
			continue
		}
		if err := nav.HandleAction(*action); err != nil {
			return cfg.fail(fmt.Sprintf("failed to handle action %s", action), err)
		}
	}
}

func (c runConfig) fail(context string, err error) error {
	fmt.Fprintf(c.errOut, "%s: %v\n", context, err)
	c.log.Error(context, "err", err)
	return fmt.Errorf("%s: %w", context, err)
}
