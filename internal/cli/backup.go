package cli

import (
	"github.com/spf13/cobra"

	"jira-cli/internal/store"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup <dest>",
		Short: "Copy the json store file to dest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.Config.OpenDatabase()
			if err != nil {
				return writeErr(cmd, err)
			}
			f, ok := db.(store.JSONFile)
			if !ok {
				return writeErr(cmd, errBackupNeedsJSON)
			}
			// Refuse to copy a file that would not load.
			if _, err := f.Read(); err != nil {
				return writeErr(cmd, err)
			}
			if err := f.Backup(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			app.Log.Info("backup written", "src", f.Path, "dest", args[0])
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"source": f.Path,
					"dest":   args[0],
				},
			})
		},
	}
	return cmd
}
