package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira-cli/internal/store"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"JIRA_DB", "JIRA_BACKEND", "JIRA_LOG_FILE", "JIRA_LOG_LEVEL", "JIRA_FORMAT", "JIRA_PRETTY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("backend", "json", "")
	fs.String("log-file", "", "")
	fs.String("log-level", "info", "")
	fs.String("format", "json", "")
	fs.Bool("pretty", false, "")
	return fs
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, store.DefaultJSONPath, cfg.DBPath())
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.Pretty)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "db: from-file.json\nlog_level: debug\nformat: edn\n")

	cfg, err := Load(path, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "from-file.json", cfg.DB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "edn", cfg.Format)
	assert.Equal(t, path, cfg.File)

	t.Setenv("JIRA_DB", "from-env.json")
	cfg, err = Load(path, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.DB)

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--db", "from-flag.json", "--log-level", "warn"}))
	cfg, err = Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.json", cfg.DB)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "edn", cfg.Format)
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	path := filepath.Join(xdg, "jira", "config.yaml")
	writeConfig(t, path, "backend: sqlite\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, store.DefaultSQLitePath, cfg.DBPath())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("JIRA_BACKEND", "postgres")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")

	t.Setenv("JIRA_BACKEND", "json")
	t.Setenv("JIRA_FORMAT", "xml")
	t.Setenv("JIRA_LOG_LEVEL", "loud")
	_, err = Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestOpenDatabase(t *testing.T) {
	db, err := Config{Backend: BackendJSON, DB: "x.json"}.OpenDatabase()
	require.NoError(t, err)
	assert.Equal(t, store.JSONFile{Path: "x.json"}, db)

	db, err = Config{Backend: BackendSQLite}.OpenDatabase()
	require.NoError(t, err)
	assert.Equal(t, store.SQLiteDatabase{Path: store.DefaultSQLitePath}, db)

	_, err = Config{Backend: "nope"}.OpenDatabase()
	assert.Error(t, err)
}
