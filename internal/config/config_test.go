package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("sheetview", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWithFileSource(t *testing.T) {
	cfg, err := Load(newFlags(t, "--source", "file", "--file", "data.csv"))
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Source)
	assert.Equal(t, "data.csv", cfg.File.Path)
	assert.Equal(t, []string{DefaultRange}, cfg.Sheets.Ranges)
	assert.Equal(t, DefaultFetchTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, OnErrorContinue, cfg.Fetch.OnError)
	assert.Equal(t, 1000, cfg.Table.VisibleRows)
	assert.True(t, cfg.Table.Striped)
	assert.True(t, cfg.Table.Resizable)
	assert.True(t, cfg.Table.Clickable)
	assert.Equal(t, DefaultWindowTitle, cfg.Window.Title)
	assert.Equal(t, DefaultWindowWidth, cfg.Window.Width)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadSheetsFromFlags(t *testing.T) {
	cfg, err := Load(newFlags(t,
		"--sheet-id", "abc123",
		"--credentials", "/keys/sa.json",
		"--range", "Deposits!A1:D",
		"--range", " Sheet2 ",
		"--fetch-timeout", "5s",
		"--on-fetch-error", "exit",
		"--rows", "250",
	))
	require.NoError(t, err)

	assert.Equal(t, SourceSheets, cfg.Source)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "/keys/sa.json", cfg.Sheets.CredentialsFile)
	assert.Equal(t, []string{"Deposits!A1:D", "Sheet2"}, cfg.Sheets.Ranges)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, OnErrorExit, cfg.Fetch.OnError)
	assert.Equal(t, 250, cfg.Table.VisibleRows)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "sheetview.yaml", `
source: sheets
sheets:
  credentials_file: /from/yaml.json
  spreadsheet_id: yaml-id
table:
  visible_rows: 10
  striped: false
log:
  level: debug
`)
	envFile := writeFile(t, dir, "test.env", "SHEETVIEW_SHEETS__SPREADSHEET_ID=dotenv-id\nSHEETVIEW_TABLE__VISIBLE_ROWS=20\n")
	t.Setenv("SHEETVIEW_TABLE__VISIBLE_ROWS", "30")

	cfg, err := Load(newFlags(t, "--config", cfgFile, "--env-file", envFile, "--log-level", "warn"))
	require.NoError(t, err)

	assert.Equal(t, "/from/yaml.json", cfg.Sheets.CredentialsFile, "yaml value")
	assert.Equal(t, "dotenv-id", cfg.Sheets.SpreadsheetID, "dotenv overrides yaml")
	assert.Equal(t, 30, cfg.Table.VisibleRows, "env overrides dotenv")
	assert.False(t, cfg.Table.Striped)
	assert.Equal(t, "warn", cfg.Log.Level, "flag overrides yaml")
}

func TestLoadLegacyEnvironment(t *testing.T) {
	t.Setenv("PRIVATE_KEY_PATH", "/legacy/key.json")
	t.Setenv("SHEET_ID", "legacy-sheet")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "/legacy/key.json", cfg.Sheets.CredentialsFile)
	assert.Equal(t, "legacy-sheet", cfg.Sheets.SpreadsheetID)
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
}

func TestLoadRejectsIncompleteSheetsSource(t *testing.T) {
	_, err := Load(newFlags(t, "--sheet-id", "only-id"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Source: SourceFile,
			File:   FileConfig{Path: "x.csv"},
			Fetch:  FetchConfig{OnError: OnErrorContinue},
		}
	}

	cases := map[string]func(*Config){
		"unknown source":        func(c *Config) { c.Source = "ftp" },
		"missing file path":     func(c *Config) { c.File.Path = "" },
		"bad policy":            func(c *Config) { c.Fetch.OnError = "retry" },
		"negative timeout":      func(c *Config) { c.Fetch.Timeout = -time.Second },
		"too many rows":         func(c *Config) { c.Table.VisibleRows = 100_001 },
		"delta without table":   func(c *Config) { c.Source = SourceDelta; c.Delta.ProfilePath = "p.share" },
		"delta without profile": func(c *Config) { c.Source = SourceDelta; c.Delta.Table = "a.b.c" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}

	c := valid()
	assert.NoError(t, c.Validate())
}

func TestDeltaCoordinates(t *testing.T) {
	share, schema, table, err := DeltaConfig{Table: "sales.emea.orders"}.Coordinates()
	require.NoError(t, err)
	assert.Equal(t, "sales", share)
	assert.Equal(t, "emea", schema)
	assert.Equal(t, "orders", table)

	_, _, _, err = DeltaConfig{Table: "sales..orders"}.Coordinates()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, _, _, err = DeltaConfig{Table: "orders"}.Coordinates()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTableConfigDisplayConfig(t *testing.T) {
	dc := TableConfig{VisibleRows: 7, Striped: true, Clickable: true}.DisplayConfig()

	assert.Equal(t, 7, dc.VisibleRows)
	assert.True(t, dc.Striped)
	assert.False(t, dc.Resizable)
	assert.True(t, dc.Clickable)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "sheets.spreadsheet_id", envKey("SHEETVIEW_SHEETS__SPREADSHEET_ID"))
	assert.Equal(t, "source", envKey("SHEETVIEW_SOURCE"))
	assert.Equal(t, "sheets.credentials_file", envKey("PRIVATE_KEY_PATH"))
	assert.Equal(t, "", envKey("HOME"))
}
