// Package datasource fetches the rows shown by the table view. Every source
// yields a two-dimensional collection of string cells; a failure is always a
// *FetchError.
package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sheetview/datatable"
	"sheetview/internal/config"
)

// Source produces a table of string cells.
type Source interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// FetchTable retrieves every row. Errors are *FetchError.
	FetchTable(ctx context.Context) (datatable.Rows, error)
}

// New returns the source selected by cfg.
func New(cfg *config.Config, logger *zap.Logger) (Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Source {
	case config.SourceSheets:
		return &SheetsSource{
			CredentialsFile: cfg.Sheets.CredentialsFile,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			Ranges:          cfg.Sheets.Ranges,
			Logger:          logger,
		}, nil
	case config.SourceFile:
		return &FileSource{Path: cfg.File.Path, Logger: logger}, nil
	case config.SourceDelta:
		share, schema, table, err := cfg.Delta.Coordinates()
		if err != nil {
			return nil, err
		}
		return &DeltaSource{
			ProfilePath: cfg.Delta.ProfilePath,
			Share:       share,
			Schema:      schema,
			Table:       table,
			Logger:      logger,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown source %q", config.ErrInvalidConfig, cfg.Source)
	}
}
