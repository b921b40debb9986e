package tui

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jira-cli/internal/model"
	"jira-cli/internal/navigator"
	"jira-cli/internal/store"
)

func scriptedPrompts() navigator.Prompts {
	names := []string{"Launch", "Write docs"}
	next := func() string {
		n := names[0]
		names = names[1:]
		return n
	}
	return navigator.Prompts{
		CreateEpic: func() (*model.Epic, error) {
			e := model.NewEpic(next(), "")
			return &e, nil
		},
		CreateStory: func() (*model.Story, error) {
			s := model.NewStory(next(), "")
			return &s, nil
		},
		UpdateStatus: func() (*model.Status, error) {
			s := model.StatusInProgress
			return &s, nil
		},
		DeleteEpic:  func() (bool, error) { return true, nil },
		DeleteStory: func() (bool, error) { return true, nil },
	}
}

func readState(t *testing.T, st *store.Store) *model.DBState {
	t.Helper()
	state, err := st.Read()
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	return state
}

func TestRun_ScriptedSession(t *testing.T) {
	st := store.New(store.NewMemoryDatabase())
	nav := navigator.New(st, scriptedPrompts())

	input := strings.Join([]string{
		"c",       // create epic 1
		"1",       // open it
		"c",       // create story 2
		"2",       // open story
		"u",       // IN PROGRESS
		"p",       // back to epic
		"garbage", // ignored
		"p",       // back home
		"q",
	}, "\n") + "\n"

	var out strings.Builder
	if err := Run(nav, strings.NewReader(input), &out, WithoutClear()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if nav.PageCount() != 0 {
		t.Fatalf("expected empty stack, got %d pages", nav.PageCount())
	}

	state := readState(t, st)
	if state.Epics[1].Name != "Launch" {
		t.Fatalf("unexpected epic: %+v", state.Epics[1])
	}
	if got := state.Epics[1].Stories; len(got) != 1 || got[0] != 2 {
		t.Fatalf("unexpected story list: %v", got)
	}
	if state.Stories[2].Status != model.StatusInProgress {
		t.Fatalf("unexpected story status: %s", state.Stories[2].Status)
	}
	for _, want := range []string{"EPICS", "STORY", "IN PROGRESS"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRun_EOFEndsCleanly(t *testing.T) {
	st := store.New(store.NewMemoryDatabase())
	nav := navigator.New(st, scriptedPrompts())

	var out strings.Builder
	if err := Run(nav, strings.NewReader(""), &out, WithoutClear()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if nav.PageCount() != 1 {
		t.Fatalf("expected home page to remain, got %d pages", nav.PageCount())
	}

	// A final line without newline is still handled.
	if err := Run(nav, strings.NewReader("c"), &out, WithoutClear()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := len(readState(t, st).Epics); n != 1 {
		t.Fatalf("expected one epic, got %d", n)
	}
}

func TestRun_ActionErrorStopsSession(t *testing.T) {
	db := store.NewMemoryDatabase()
	st := store.New(db)
	nav := navigator.New(st, scriptedPrompts())
	db.WriteErr = errors.New("read-only filesystem")

	var out, errOut strings.Builder
	err := Run(nav, strings.NewReader("c\nq\n"), &out, WithoutClear(), WithErrorOutput(&errOut))
	var we *store.WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if !strings.Contains(errOut.String(), "failed to handle action CreateEpic") || !strings.Contains(errOut.String(), "read-only filesystem") {
		t.Fatalf("unexpected error output: %q", errOut.String())
	}
	if nav.PageCount() != 1 {
		t.Fatalf("expected stack unchanged, got %d pages", nav.PageCount())
	}
}

func TestRun_DrawErrorStopsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	nav := navigator.New(store.New(store.JSONFile{Path: path}), scriptedPrompts())

	var out strings.Builder
	err := Run(nav, strings.NewReader("q\n"), &out, WithoutClear())
	var pe *store.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(out.String(), "failed to render page") {
		t.Fatalf("expected failure on output, got %q", out.String())
	}
}

func TestRun_ClearsScreenByDefault(t *testing.T) {
	nav := navigator.New(store.New(store.NewMemoryDatabase()), scriptedPrompts())

	var out strings.Builder
	if err := Run(nav, strings.NewReader("q\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Fatalf("expected clear-screen sequence")
	}
}

func TestRun_LinePromptsShareInput(t *testing.T) {
	st := store.New(store.NewMemoryDatabase())
	input := strings.Join([]string{
		"c",
		"Alpha\tfirst epic", // name, tab, description
		"1",
		"u",
		"2", // IN PROGRESS
		"c",
		"Story",
		"", // empty description
		"p",
		"q",
	}, "\n") + "\n"
	r := bufio.NewReader(strings.NewReader(input))

	var out strings.Builder
	nav := navigator.New(st, NewLinePrompts(r, &out))
	if err := Run(nav, r, &out, WithoutClear()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if nav.PageCount() != 0 {
		t.Fatalf("expected session to exit, got %d pages", nav.PageCount())
	}

	state := readState(t, st)
	epic := state.Epics[1]
	if epic.Name != "Alpha" || epic.Description != "first epic" || epic.Status != model.StatusInProgress {
		t.Fatalf("unexpected epic: %+v", epic)
	}
	if story := state.Stories[2]; story.Name != "Story" || story.Description != "" {
		t.Fatalf("unexpected story: %+v", story)
	}
	if !strings.Contains(out.String(), "New epic") {
		t.Fatalf("expected form to be drawn, got %q", out.String())
	}
}

func TestRun_LinePromptCancelledAtEOF(t *testing.T) {
	st := store.New(store.NewMemoryDatabase())
	r := bufio.NewReader(strings.NewReader("c\nHalf\n"))

	var out strings.Builder
	nav := navigator.New(st, NewLinePrompts(r, &out))
	if err := Run(nav, r, &out, WithoutClear()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := len(readState(t, st).Epics); n != 0 {
		t.Fatalf("expected cancelled create, got %d epics", n)
	}
	if nav.PageCount() != 1 {
		t.Fatalf("expected home page to remain, got %d pages", nav.PageCount())
	}
}

func TestRun_LinePromptsDeleteAndPicker(t *testing.T) {
	st := store.New(store.NewMemoryDatabase())
	epicID, err := st.CreateEpic(model.NewEpic("Doomed", ""))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := st.CreateStory(model.NewStory("s", ""), epicID); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 9 is not a status and q cancels the picker; the first delete is declined.
	input := "1\nu\n9q\nd\nn\nd\ny\np\nq\n"
	r := bufio.NewReader(strings.NewReader(input))

	var out strings.Builder
	nav := navigator.New(st, NewLinePrompts(r, &out))
	if err := Run(nav, r, &out, WithoutClear()); err != nil {
		t.Fatalf("run: %v", err)
	}

	state := readState(t, st)
	if len(state.Epics) != 0 || len(state.Stories) != 0 {
		t.Fatalf("expected epic and story deleted, got %+v", state)
	}
	if !strings.Contains(out.String(), "no longer exists") {
		t.Fatalf("expected stale fallback after delete")
	}
}
