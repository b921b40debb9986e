package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"jira-cli/internal/config"
	"jira-cli/internal/format"
	"jira-cli/internal/logging"
	"jira-cli/internal/navigator"
	"jira-cli/internal/store"
	"jira-cli/internal/tui"
	"jira-cli/internal/ui"
)

// version is overridden at build time with -ldflags "-X jira-cli/internal/cli.version=...".
var version = "dev"

type App struct {
	ConfigFile string
	NoClear    bool

	Config config.Config
	Log    *slog.Logger

	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{Log: slog.New(slog.DiscardHandler)}

	cmd := &cobra.Command{
		Use:          "jira",
		Short:        "Terminal epic and story tracker",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive tracker on ./db.json
  jira

  # Use another store file, or the sqlite backend
  jira --db ~/work/board.json
  jira --backend sqlite --db board.sqlite

  # Scriptable commands
  jira status
  jira export --format edn --pretty
  jira doctor
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigFile, cmd.Flags())
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Config = cfg

		log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Log = log
		app.logCloser = closer
		app.Log.Debug("config loaded", "command", cmd.CommandPath(), "backend", cfg.Backend, "db", cfg.DBPath(), "config_file", cfg.File)
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Close()
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigFile, "config", "", "Config file (default $XDG_CONFIG_HOME/jira/config.yaml if present)")
	pf.String("db", "", "Store file path (env JIRA_DB; default ./db.json, or ./db.sqlite with --backend sqlite)")
	pf.String("backend", config.BackendJSON, "Store backend (json|sqlite)")
	pf.String("log-file", "", "Append debug logs to this file (env JIRA_LOG_FILE)")
	pf.String("log-level", "info", "Log level (debug|info|warn|error)")
	pf.String("format", format.FormatJSON, "Output format (json|edn)")
	pf.Bool("pretty", false, "Pretty-print output")

	cmd.Flags().BoolVar(&app.NoClear, "no-clear", false, "Do not clear the screen between pages")

	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func (app *App) Close() error {
	if app.logCloser == nil {
		return nil
	}
	err := app.logCloser.Close()
	app.logCloser = nil
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	// Fail before drawing anything when the store file is unreadable.
	if _, err := st.Read(); err != nil {
		return writeErr(cmd, err)
	}

	ui.ApplyColorProfile()
	ui.ApplyThemePreference()

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	lines := bufio.NewReader(in)
	prompts := tui.NewLinePrompts(lines, out)
	if isTerminal(in) {
		prompts = tui.NewPrompts(in, out)
	}
	nav := navigator.New(st, prompts, navigator.WithLogger(app.Log))

	opts := []tui.RunOption{
		tui.WithErrorOutput(cmd.ErrOrStderr()),
		tui.WithLogger(app.Log),
	}
	if app.NoClear {
		opts = append(opts, tui.WithoutClear())
	}
	// Run already printed the failure.
	return tui.Run(nav, lines, out, opts...)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func openStore(app *App) (*store.Store, error) {
	db, err := app.Config.OpenDatabase()
	if err != nil {
		return nil, err
	}
	return store.New(db, store.WithLogger(app.Log)), nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Config.Format, app.Config.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
