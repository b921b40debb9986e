// Package config resolves runtime settings from flags, JIRA_* environment
// variables, an optional yaml file and defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"jira-cli/internal/format"
	"jira-cli/internal/store"
)

const (
	envPrefix = "JIRA"

	KeyDB       = "db"
	KeyBackend  = "backend"
	KeyLogFile  = "log_file"
	KeyLogLevel = "log_level"
	KeyFormat   = "format"
	KeyPretty   = "pretty"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// flagNames maps config keys to the CLI flags that override them.
var flagNames = map[string]string{
	KeyDB:       "db",
	KeyBackend:  "backend",
	KeyLogFile:  "log-file",
	KeyLogLevel: "log-level",
	KeyFormat:   "format",
	KeyPretty:   "pretty",
}

type Config struct {
	DB       string
	Backend  string
	LogFile  string
	LogLevel string
	Format   string
	Pretty   bool

	// File is the config file that was read, if any.
	File string
}

// Load builds a Config. An explicit file must exist; the default
// $XDG_CONFIG_HOME/jira/config.yaml is read only when present. flags may be
// nil.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyBackend, BackendJSON)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyFormat, format.FormatJSON)
	v.SetDefault(KeyPretty, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	used := ""
	switch {
	case strings.TrimSpace(file) != "":
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
		used = file
	default:
		if path, ok := defaultConfigFile(); ok {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			used = path
		}
	}

	cfg := Config{
		DB:       strings.TrimSpace(v.GetString(KeyDB)),
		Backend:  strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		LogFile:  strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Format:   strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		Pretty:   v.GetBool(KeyPretty),
		File:     used,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultConfigFile() (string, bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(dir, "jira", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want json or sqlite)", c.Backend))
	}
	if !format.Valid(c.Format) {
		errs = append(errs, fmt.Errorf("unknown format %q (want %s)", c.Format, strings.Join(format.Formats(), " or ")))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// DBPath is the store location, defaulting per backend.
func (c Config) DBPath() string {
	if c.DB != "" {
		return c.DB
	}
	if c.Backend == BackendSQLite {
		return store.DefaultSQLitePath
	}
	return store.DefaultJSONPath
}

func (c Config) OpenDatabase() (store.Database, error) {
	switch c.Backend {
	case BackendJSON, "":
		return store.JSONFile{Path: c.DBPath()}, nil
	case BackendSQLite:
		return store.SQLiteDatabase{Path: c.DBPath()}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}
