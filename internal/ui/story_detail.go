package ui

import (
	"fmt"
	"io"
	"strings"

	"jira-cli/internal/model"
	"jira-cli/internal/store"
)

// StoryDetail shows one story. It has no child pages.
type StoryDetail struct {
	EpicID  uint32
	StoryID uint32
	Store   *store.Store
}

func NewStoryDetail(st *store.Store, epicID, storyID uint32) *StoryDetail {
	return &StoryDetail{EpicID: epicID, StoryID: storyID, Store: st}
}

func (p *StoryDetail) Kind() PageKind { return PageKindStoryDetail }

func (p *StoryDetail) Draw(w io.Writer) error {
	st, err := p.Store.Read()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(sectionHeader("STORY", pageWidth))

	story, ok := p.lookup(st)
	if !ok {
		b.WriteString(styleWarning().Render(fmt.Sprintf("This story (%d) no longer exists.", p.StoryID)) + "\n")
		b.WriteString(footer("[p] previous"))
		_, err = io.WriteString(w, b.String())
		return err
	}

	b.WriteString(headerRow(detailColumns))
	b.WriteString(row(
		cell(formatID(p.StoryID), detailColumns[0].width),
		cell(story.Name, detailColumns[1].width),
		cell(story.Description, detailColumns[2].width),
		statusCell(story.Status, detailColumns[3].width),
	))
	if md := renderMarkdown(story.Description, pageWidth); md != "" {
		b.WriteString("\n" + md + "\n")
	}
	b.WriteString(footer("[p] previous", "[u] update story", "[d] delete story"))

	_, err = io.WriteString(w, b.String())
	return err
}

func (p *StoryDetail) HandleInput(line string) (*model.Action, error) {
	line = strings.TrimSpace(line)
	if line == "p" {
		return actionPtr(model.NavigateToPreviousPage()), nil
	}
	if line != "u" && line != "d" {
		return nil, nil
	}

	st, err := p.Store.Read()
	if err != nil {
		return nil, err
	}
	if _, ok := p.lookup(st); !ok {
		return nil, nil
	}
	if line == "u" {
		return actionPtr(model.UpdateStoryStatus(p.StoryID)), nil
	}
	return actionPtr(model.DeleteStory(p.EpicID, p.StoryID)), nil
}

// lookup treats a story as gone when either its record or its epic is
// missing.
func (p *StoryDetail) lookup(st *model.DBState) (model.Story, bool) {
	if _, ok := st.Epics[p.EpicID]; !ok {
		return model.Story{}, false
	}
	story, ok := st.Stories[p.StoryID]
	return story, ok
}
