package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqldialect/pkg/dialect"

	// Register dialects via init()
	_ "github.com/leapstack-labs/sqldialect/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqldialect/pkg/dialects/clickhouse"
	_ "github.com/leapstack-labs/sqldialect/pkg/dialects/postgres"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqldialect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "dialect")
	flags.String("output", "", "output")
	flags.Bool("verbose", false, "verbose")
	flags.Int("workers", 0, "workers")
	flags.String("show-type", "", "show type")
	flags.Bool("all", false, "all rows")
	flags.String("alias", "", "not a config key")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultShowType, cfg.Alert.ShowType)
	assert.Equal(t, DefaultPrompt, cfg.Repl.Prompt)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `dialect: postgres
workers: 2
alert:
  title: Nightly
  show_type: text
repl:
  prompt: "pg> "
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "Nightly", cfg.Alert.Title)
	assert.Equal(t, "text", cfg.Alert.ShowType)
	assert.Equal(t, "pg> ", cfg.Repl.Prompt)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_FlagPrecedence(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\n")
	t.Setenv("SQLDIALECT_DIALECT", "ansi")

	flags := newFlags()
	require.NoError(t, flags.Set("dialect", "clickhouse"))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", cfg.Dialect, "flag value should override config file and env var")
}

func TestLoad_EnvPrecedenceOverFile(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\nworkers: 2\n")
	t.Setenv("SQLDIALECT_DIALECT", "ansi")
	t.Setenv("SQLDIALECT_WORKERS", "9")
	t.Setenv("SQLDIALECT_ALERT_SHOW_TYPE", "text")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, 9, cfg.Workers)
	assert.Equal(t, "text", cfg.Alert.ShowType)
}

func TestLoad_FlagNotSetUsesEnv(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\n")
	t.Setenv("SQLDIALECT_DIALECT", "ansi")

	cfg, err := Load(path, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect, "env var should be used when flag is not set")
}

func TestLoad_NestedFlags(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Set("show-type", "text"))
	require.NoError(t, flags.Set("all", "true"))
	require.NoError(t, flags.Set("alias", "ignored"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Alert.ShowType)
	assert.True(t, cfg.Alert.ShowAll)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown dialect", "dialect: mysql\n", "invalid dialect"},
		{"unknown output", "output: xml\n", "invalid output"},
		{"unknown show type", "alert:\n  show_type: chart\n", "invalid alert.show_type"},
		{"zero workers", "workers: 0\n", "workers must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_UnknownDialectWrapsSentinel(t *testing.T) {
	_, err := Load(writeConfig(t, "dialect: mysql\n"), nil)
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "dialect", envKey("SQLDIALECT_DIALECT"))
	assert.Equal(t, "alert.show_type", envKey("SQLDIALECT_ALERT_SHOW_TYPE"))
	assert.Equal(t, "repl.history_file", envKey("SQLDIALECT_REPL_HISTORY_FILE"))
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Dialect: "ansi"}
	logger := slog.New(slog.DiscardHandler)
	ctx = WithConfig(ctx, cfg)
	ctx = context.WithValue(ctx, LoggerKey(), logger)

	assert.Same(t, cfg, FromContext(ctx))
	assert.Same(t, logger, GetLogger(ctx))
}
