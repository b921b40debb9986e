package cli

import (
	"github.com/spf13/cobra"

	"jira-cli/internal/statusutil"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store location and item counts",
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

			var doneEpics, doneStories int
			for _, e := range state.Epics {
				if statusutil.IsEndState(e.Status) {
					doneEpics++
				}
			}
			for _, s := range state.Stories {
				if statusutil.IsEndState(s.Status) {
					doneStories++
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"db":          app.Config.DBPath(),
					"backend":     app.Config.Backend,
					"epics":       len(state.Epics),
					"epicsDone":   doneEpics,
					"stories":     len(state.Stories),
					"storiesDone": doneStories,
					"lastItemId":  state.LastItemID,
				},
			})
		},
	}
	return cmd
}
