package cli

import (
	"github.com/spf13/cobra"

	"jira-cli/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check store integrity (story ownership and id counter)",
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

			report := store.Doctor(state)
			meta := map[string]any{
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": meta,
			}); err != nil {
				return err
			}

			if report.HasErrors() {
				return writeErr(cmd, ErrDoctorIssuesFound)
			}
			return nil
		},
	}
	return cmd
}
