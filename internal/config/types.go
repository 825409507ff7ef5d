// Package config provides configuration management for sheetview.
//
// Values are layered, lowest to highest precedence: built-in defaults, the
// YAML config file, a .env file, process environment variables and finally
// command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sheetview/datatable"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Source kinds.
const (
	SourceSheets = "sheets"
	SourceFile   = "file"
	SourceDelta  = "delta"
)

// Fetch failure policies.
const (
	// OnErrorContinue starts the UI with an empty table.
	OnErrorContinue = "continue"
	// OnErrorExit aborts startup with the fetch error.
	OnErrorExit = "exit"
)

// Defaults.
const (
	DefaultConfigFile   = "sheetview.yaml"
	DefaultEnvFile      = ".env"
	DefaultRange        = "Sheet1"
	DefaultFetchTimeout = 60 * time.Second
	DefaultWindowTitle  = "Google Sheets Table"
	DefaultWindowWidth  = 700
	DefaultWindowHeight = 600
)

// SheetsConfig configures the Google Sheets source.
type SheetsConfig struct {
	CredentialsFile string   `koanf:"credentials_file"`
	SpreadsheetID   string   `koanf:"spreadsheet_id"`
	Ranges          []string `koanf:"ranges"`
}

// FileConfig configures the local file source.
type FileConfig struct {
	Path string `koanf:"path"`
}

// DeltaConfig configures the Delta Sharing source.
type DeltaConfig struct {
	ProfilePath string `koanf:"profile_path"`
	// Table is "share.schema.table".
	Table string `koanf:"table"`
}

// Coordinates splits Table into its share, schema and table names.
func (c DeltaConfig) Coordinates() (share, schema, table string, err error) {
	parts := strings.Split(c.Table, ".")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: delta table %q must be share.schema.table", ErrInvalidConfig, c.Table)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", "", "", fmt.Errorf("%w: delta table %q has an empty component", ErrInvalidConfig, c.Table)
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// FetchConfig controls the startup fetch.
type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"`
	OnError string        `koanf:"on_error"`
}

// TableConfig holds the initial display configuration.
type TableConfig struct {
	VisibleRows int  `koanf:"visible_rows"`
	Striped     bool `koanf:"striped"`
	Resizable   bool `koanf:"resizable"`
	Clickable   bool `koanf:"clickable"`
}

// DisplayConfig converts the table settings to the model's configuration.
func (c TableConfig) DisplayConfig() datatable.DisplayConfig {
	return datatable.DisplayConfig{
		Striped:     c.Striped,
		Resizable:   c.Resizable,
		Clickable:   c.Clickable,
		VisibleRows: c.VisibleRows,
	}
}

// WindowConfig holds the main window settings.
type WindowConfig struct {
	Title  string `koanf:"title"`
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Config holds all sheetview configuration.
type Config struct {
	Source string       `koanf:"source"`
	Sheets SheetsConfig `koanf:"sheets"`
	File   FileConfig   `koanf:"file"`
	Delta  DeltaConfig  `koanf:"delta"`
	Fetch  FetchConfig  `koanf:"fetch"`
	Table  TableConfig  `koanf:"table"`
	Window WindowConfig `koanf:"window"`
	Log    LogConfig    `koanf:"log"`
}

// Validate checks that the selected source is fully configured and that the
// remaining settings are in range.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSheets:
		if c.Sheets.CredentialsFile == "" {
			return fmt.Errorf("%w: sheets.credentials_file must be set", ErrInvalidConfig)
		}
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("%w: sheets.spreadsheet_id must be set", ErrInvalidConfig)
		}
	case SourceFile:
		if c.File.Path == "" {
			return fmt.Errorf("%w: file.path must be set", ErrInvalidConfig)
		}
	case SourceDelta:
		if c.Delta.ProfilePath == "" {
			return fmt.Errorf("%w: delta.profile_path must be set", ErrInvalidConfig)
		}
		if _, _, _, err := c.Delta.Coordinates(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown source %q (want %s, %s or %s)",
			ErrInvalidConfig, c.Source, SourceSheets, SourceFile, SourceDelta)
	}

	switch c.Fetch.OnError {
	case OnErrorContinue, OnErrorExit:
	default:
		return fmt.Errorf("%w: fetch.on_error must be %q or %q, got %q",
			ErrInvalidConfig, OnErrorContinue, OnErrorExit, c.Fetch.OnError)
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("%w: fetch.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Table.VisibleRows < 0 || c.Table.VisibleRows > datatable.MaxVisibleRows {
		return fmt.Errorf("%w: table.visible_rows must be within [0, %d]", ErrInvalidConfig, datatable.MaxVisibleRows)
	}
	return nil
}
