package ui

import (
	"io"
	"strings"

	"jira-cli/internal/model"
	"jira-cli/internal/store"
)

const pageWidth = 66

var listColumns = []column{
	{title: "id", width: 12},
	{title: "name", width: 34},
	{title: "status", width: 18},
}

var detailColumns = []column{
	{title: "id", width: 6},
	{title: "name", width: 14},
	{title: "description", width: 29},
	{title: "status", width: 14},
}

func statusCell(s model.Status, width int) string {
	return " " + statusStyle(s).Render(ColumnString(s.String(), width-2)) + " "
}

// HomePage lists every epic by ascending id.
type HomePage struct {
	Store *store.Store
}

func NewHomePage(st *store.Store) *HomePage {
	return &HomePage{Store: st}
}

func (p *HomePage) Kind() PageKind { return PageKindHome }

func (p *HomePage) Draw(w io.Writer) error {
	st, err := p.Store.Read()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(sectionHeader("EPICS", pageWidth))
	b.WriteString(headerRow(listColumns))
	for _, id := range st.SortedEpicIDs() {
		e := st.Epics[id]
		b.WriteString(row(
			cell(formatID(id), listColumns[0].width),
			cell(e.Name, listColumns[1].width),
			statusCell(e.Status, listColumns[2].width),
		))
	}
	if len(st.Epics) == 0 {
		b.WriteString(styleMuted().Render("  no epics yet") + "\n")
	}
	b.WriteString(footer("[q] quit", "[c] create epic", "[:id:] navigate to epic"))

	_, err = io.WriteString(w, b.String())
	return err
}

func (p *HomePage) HandleInput(line string) (*model.Action, error) {
	switch strings.TrimSpace(line) {
	case "q":
		return actionPtr(model.Exit()), nil
	case "c":
		return actionPtr(model.CreateEpic()), nil
	}
	id, ok := parseID(line)
	if !ok {
		return nil, nil
	}
	st, err := p.Store.Read()
	if err != nil {
		return nil, err
	}
	if _, ok := st.Epics[id]; !ok {
		return nil, nil
	}
	return actionPtr(model.NavigateToEpicDetail(id)), nil
}

func actionPtr(a model.Action) *model.Action { return &a }
