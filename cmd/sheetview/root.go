package main

import (
	"fmt"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sheetview/datasource"
	"sheetview/internal/config"
	"sheetview/internal/logging"
	"sheetview/windows"
)

const appID = "io.sheetview"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetview",
		Short: "Browse a spreadsheet in a virtualized desktop table",
		Long: `sheetview fetches a table once at startup and shows it in a scrollable,
virtualized table view with row selection and per-row controls.

The table comes from a Google spreadsheet, a local CSV, Parquet or JSON file,
or a Delta Sharing table. Settings are read from sheetview.yaml, a .env file,
SHEETVIEW_* environment variables and flags, later sources winning.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runViewer,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runViewer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	src, err := datasource.New(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("starting sheetview",
		zap.String("version", version),
		zap.String("source", src.Name()),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout))

	mw := windows.NewMainWindow(app.NewWithID(appID), cfg, logger)
	if err := mw.Bootstrap(cmd.Context(), src); err != nil {
		return err
	}
	mw.ShowAndRun()
	return nil
}
