package cli

import (
	"github.com/spf13/cobra"

	"jira-cli/internal/model"
)

type exportEpic struct {
	ID          uint32       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	Stories     []uint32     `json:"stories"`
}

type exportStory struct {
	ID          uint32       `json:"id"`
	EpicID      uint32       `json:"epicId,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
}

type exportData struct {
	LastItemID uint32        `json:"lastItemId"`
	Epics      []exportEpic  `json:"epics"`
	Stories    []exportStory `json:"stories"`
}

func buildExport(state *model.DBState) exportData {
	out := exportData{
		LastItemID: state.LastItemID,
		Epics:      make([]exportEpic, 0, len(state.Epics)),
		Stories:    make([]exportStory, 0, len(state.Stories)),
	}
	owner := map[uint32]uint32{}
	for _, id := range state.SortedEpicIDs() {
		e := state.Epics[id]
		for _, sid := range e.Stories {
			if _, seen := owner[sid]; !seen {
				owner[sid] = id
			}
		}
		out.Epics = append(out.Epics, exportEpic{
			ID:          id,
			Name:        e.Name,
			Description: e.Description,
			Status:      e.Status,
			Stories:     append([]uint32{}, e.Stories...),
		})
	}
	for _, id := range state.SortedStoryIDs() {
		s := state.Stories[id]
		out.Stories = append(out.Stories, exportStory{
			ID:          id,
			EpicID:      owner[id],
			Name:        s.Name,
			Description: s.Description,
			Status:      s.Status,
		})
	}
	return out
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every epic and story, sorted by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			state, err := st.Read()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": buildExport(state)})
		},
	}
	return cmd
}
