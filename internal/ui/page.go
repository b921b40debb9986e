// Package ui holds the pages of the tracker: what each screen draws and how
// it turns a line of input into an Action.
package ui

import (
	"io"

	"jira-cli/internal/model"
)

type PageKind int

const (
	PageKindHome PageKind = iota + 1
	PageKindEpicDetail
	PageKindStoryDetail
)

func (k PageKind) String() string {
	switch k {
	case PageKindHome:
		return "home"
	case PageKindEpicDetail:
		return "epic_detail"
	case PageKindStoryDetail:
		return "story_detail"
	default:
		return "unknown"
	}
}

// Page is one screen on the navigator's stack.
//
// Draw never mutates state. HandleInput returns nil, nil for input it does
// not recognize; it only errors when the store cannot be read.
type Page interface {
	Draw(w io.Writer) error
	HandleInput(line string) (*model.Action, error)
	Kind() PageKind
}
