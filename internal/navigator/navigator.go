// Package navigator owns the page stack and turns Actions into page pushes,
// pops and store mutations.
package navigator

import (
	"errors"
	"fmt"
	"log/slog"

	"jira-cli/internal/model"
	"jira-cli/internal/store"
	"jira-cli/internal/ui"
)

var (
	ErrPromptUnavailable = errors.New("prompt unavailable")
	ErrUnknownAction     = errors.New("unknown action")
)

// Prompts are the interactive collaborators the navigator asks before a
// mutation. A nil *Epic, *Story or *Status answer means the user cancelled.
type Prompts struct {
	CreateEpic   func() (*model.Epic, error)
	CreateStory  func() (*model.Story, error)
	UpdateStatus func() (*model.Status, error)
	DeleteEpic   func() (bool, error)
	DeleteStory  func() (bool, error)
}

type Navigator struct {
	pages   []ui.Page
	prompts Prompts
	store   *store.Store
	log     *slog.Logger
}

type Option func(*Navigator)

func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// New returns a navigator whose stack holds only the home page.
func New(st *store.Store, prompts Prompts, opts ...Option) *Navigator {
	n := &Navigator{
		pages:   []ui.Page{ui.NewHomePage(st)},
		prompts: prompts,
		store:   st,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// CurrentPage returns the top of the stack, or nil once the stack is empty.
func (n *Navigator) CurrentPage() ui.Page {
	if len(n.pages) == 0 {
		return nil
	}
	return n.pages[len(n.pages)-1]
}

func (n *Navigator) PageCount() int { return len(n.pages) }

func (n *Navigator) SetPrompts(p Prompts) { n.prompts = p }

func (n *Navigator) HandleAction(a model.Action) error {
	n.log.Debug("handle action", "action", a.String(), "depth", len(n.pages))
	if err := n.handle(a); err != nil {
		n.log.Warn("action failed", "action", a.String(), "err", err)
		return err
	}
	return nil
}

func (n *Navigator) handle(a model.Action) error {
	switch a.Type {
	case model.ActionNavigateToEpicDetail:
		n.pages = append(n.pages, ui.NewEpicDetail(n.store, a.EpicID))
		return nil

	case model.ActionNavigateToStoryDetail:
		n.pages = append(n.pages, ui.NewStoryDetail(n.store, a.EpicID, a.StoryID))
		return nil

	case model.ActionNavigateToPreviousPage:
		if len(n.pages) > 0 {
			n.pages = n.pages[:len(n.pages)-1]
		}
		return nil

	case model.ActionExit:
		n.pages = n.pages[:0]
		return nil

	case model.ActionCreateEpic:
		if n.prompts.CreateEpic == nil {
			return fmt.Errorf("create epic: %w", ErrPromptUnavailable)
		}
		epic, err := n.prompts.CreateEpic()
		if err != nil {
			return fmt.Errorf("create epic prompt: %w", err)
		}
		if epic == nil {
			n.log.Debug("create epic cancelled")
			return nil
		}
		if _, err := n.store.CreateEpic(*epic); err != nil {
			return fmt.Errorf("create epic: %w", err)
		}
		return nil

	case model.ActionCreateStory:
		if n.prompts.CreateStory == nil {
			return fmt.Errorf("create story: %w", ErrPromptUnavailable)
		}
		story, err := n.prompts.CreateStory()
		if err != nil {
			return fmt.Errorf("create story prompt: %w", err)
		}
		if story == nil {
			n.log.Debug("create story cancelled", "epic_id", a.EpicID)
			return nil
		}
		if _, err := n.store.CreateStory(*story, a.EpicID); err != nil {
			return fmt.Errorf("create story in epic %d: %w", a.EpicID, err)
		}
		return nil

	case model.ActionUpdateEpicStatus:
		status, err := n.askStatus()
		if err != nil || status == nil {
			return err
		}
		if err := n.store.UpdateEpicStatus(a.EpicID, *status); err != nil {
			return fmt.Errorf("update epic %d status: %w", a.EpicID, err)
		}
		return nil

	case model.ActionUpdateStoryStatus:
		status, err := n.askStatus()
		if err != nil || status == nil {
			return err
		}
		if err := n.store.UpdateStoryStatus(a.StoryID, *status); err != nil {
			return fmt.Errorf("update story %d status: %w", a.StoryID, err)
		}
		return nil

	case model.ActionDeleteEpic:
		if n.prompts.DeleteEpic == nil {
			return fmt.Errorf("delete epic: %w", ErrPromptUnavailable)
		}
		ok, err := n.prompts.DeleteEpic()
		if err != nil {
			return fmt.Errorf("delete epic prompt: %w", err)
		}
		if !ok {
			return nil
		}
		if err := n.store.DeleteEpic(a.EpicID); err != nil {
			return fmt.Errorf("delete epic %d: %w", a.EpicID, err)
		}
		return nil

	case model.ActionDeleteStory:
		if n.prompts.DeleteStory == nil {
			return fmt.Errorf("delete story: %w", ErrPromptUnavailable)
		}
		ok, err := n.prompts.DeleteStory()
		if err != nil {
			return fmt.Errorf("delete story prompt: %w", err)
		}
		if !ok {
			return nil
		}
		if err := n.store.DeleteStory(a.EpicID, a.StoryID); err != nil {
			return fmt.Errorf("delete story %d: %w", a.StoryID, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownAction, a.Type)
}

func (n *Navigator) askStatus() (*model.Status, error) {
	if n.prompts.UpdateStatus == nil {
		return nil, fmt.Errorf("update status: %w", ErrPromptUnavailable)
	}
	status, err := n.prompts.UpdateStatus()
	if err != nil {
		return nil, fmt.Errorf("update status prompt: %w", err)
	}
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("update status: invalid status %d", int(*status))
	}
	return status, nil
}
