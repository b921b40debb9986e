package ui

import (
	"fmt"
	"io"
	"strings"

	"jira-cli/internal/model"
	"jira-cli/internal/store"
)

// EpicDetail shows one epic and the stories it lists, in list order.
type EpicDetail struct {
	EpicID uint32
	Store  *store.Store
}

func NewEpicDetail(st *store.Store, epicID uint32) *EpicDetail {
	return &EpicDetail{EpicID: epicID, Store: st}
}

func (p *EpicDetail) Kind() PageKind { return PageKindEpicDetail }

func (p *EpicDetail) Draw(w io.Writer) error {
	st, err := p.Store.Read()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(sectionHeader("EPIC", pageWidth))

	epic, ok := st.Epics[p.EpicID]
	if !ok {
		b.WriteString(styleWarning().Render(fmt.Sprintf("This epic (%d) no longer exists.", p.EpicID)) + "\n")
		b.WriteString(footer("[p] previous"))
		_, err = io.WriteString(w, b.String())
		return err
	}

	b.WriteString(headerRow(detailColumns))
	b.WriteString(row(
		cell(formatID(p.EpicID), detailColumns[0].width),
		cell(epic.Name, detailColumns[1].width),
		cell(epic.Description, detailColumns[2].width),
		statusCell(epic.Status, detailColumns[3].width),
	))
	if md := renderMarkdown(epic.Description, pageWidth); md != "" {
		b.WriteString("\n" + md + "\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionHeader("STORIES", pageWidth))
	b.WriteString(headerRow(listColumns))
	shown := 0
	for _, sid := range epic.Stories {
		story, ok := st.Stories[sid]
		if !ok {
			continue
		}
		shown++
		b.WriteString(row(
			cell(formatID(sid), listColumns[0].width),
			cell(story.Name, listColumns[1].width),
			statusCell(story.Status, listColumns[2].width),
		))
	}
	if shown == 0 {
		b.WriteString(styleMuted().Render("  no stories yet") + "\n")
	}
	b.WriteString(footer(
		"[p] previous",
		"[u] update epic",
		"[d] delete epic",
		"[c] create story",
		"[:id:] navigate to story",
	))

	_, err = io.WriteString(w, b.String())
	return err
}

func (p *EpicDetail) HandleInput(line string) (*model.Action, error) {
	line = strings.TrimSpace(line)
	if line == "p" {
		return actionPtr(model.NavigateToPreviousPage()), nil
	}

	st, err := p.Store.Read()
	if err != nil {
		return nil, err
	}
	epic, ok := st.Epics[p.EpicID]
	if !ok {
		return nil, nil
	}

	switch line {
	case "u":
		return actionPtr(model.UpdateEpicStatus(p.EpicID)), nil
	case "d":
		return actionPtr(model.DeleteEpic(p.EpicID)), nil
	case "c":
		return actionPtr(model.CreateStory(p.EpicID)), nil
	}
	sid, ok := parseID(line)
	if !ok || !epic.HasStory(sid) {
		return nil, nil
	}
	return actionPtr(model.NavigateToStoryDetail(p.EpicID, sid)), nil
}
