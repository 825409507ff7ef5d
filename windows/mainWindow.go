package windows

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"sheetview/datasource"
	"sheetview/datatable"
	"sheetview/internal/config"
)

// MainWindow hosts the table view: a toolbar, the table and a status bar.
type MainWindow struct {
	a         fyne.App
	w         fyne.Window
	cfg       *config.Config
	logger    *zap.Logger
	model     *datatable.TableModel
	table     *TableView
	top       fyne.CanvasObject
	bottom    fyne.CanvasObject
	statusBar *widget.Label
	source    string
}

// NewMainWindow creates the main window of app. The table starts empty with
// the display configuration from cfg.
func NewMainWindow(a fyne.App, cfg *config.Config, logger *zap.Logger) *MainWindow {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &MainWindow{
		a:      a,
		cfg:    cfg,
		logger: logger,
		model:  datatable.NewTableModel(),
	}

	display := cfg.Table.DisplayConfig()
	t.model.SetStriped(display.Striped)
	t.model.SetResizable(display.Resizable)
	t.model.SetClickable(display.Clickable)
	t.model.SetVisibleRowCount(display.VisibleRows)

	t.a.Settings().SetTheme(&CustomTheme{})

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.statusBar.Truncation = fyne.TextTruncateEllipsis
	t.bottom = container.NewStack(t.statusBar)

	t.table = NewTableView(t.model, logger)
	t.table.OnSelectionChanged = func(selection []int) {
		t.SetStatus(fmt.Sprintf("%d rows selected", len(selection)))
	}

	t.top = widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			t.exportData(FormatCSV)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MoveUpIcon(), func() {
			t.model.RequestScrollTo(0)
			t.table.RenderFrame()
		}),
		widget.NewToolbarAction(theme.MoveDownIcon(), func() {
			t.model.RequestScrollTo(t.model.VisibleRowCount())
			t.table.RenderFrame()
		}),
	)

	t.w = a.NewWindow(cfg.Window.Title)
	t.w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	t.w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Export as Parquet...", func() { t.exportData(FormatParquet) }),
			fyne.NewMenuItem("Export as CSV...", func() { t.exportData(FormatCSV) }),
			fyne.NewMenuItem("Export as JSON...", func() { t.exportData(FormatJSON) }),
		),
	))
	t.w.SetContent(container.NewBorder(t.top, t.bottom, nil, nil, t.table))
	return t
}

// Window returns the underlying fyne window.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// TableView returns the table shown in the window.
func (t *MainWindow) TableView() *TableView {
	return t.table
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// Status returns the current status bar message.
func (t *MainWindow) Status() string {
	return t.statusBar.Text
}

// Bootstrap fetches the table once, bounded by the configured fetch timeout,
// and injects it into the view. On failure the error is logged and shown in
// the status bar; with the "exit" policy the *datasource.FetchError is
// returned, otherwise the window starts with an empty table and nil is
// returned.
func (t *MainWindow) Bootstrap(ctx context.Context, src datasource.Source) error {
	t.source = src.Name()
	t.SetStatus("Loading " + t.source + "...")

	ctx, cancel := createTimeoutContext(ctx, t.cfg.Fetch.Timeout)
	defer cancel()

	rows, err := src.FetchTable(ctx)
	if err != nil {
		fe := datasource.AsFetchError(t.source, err)
		t.logger.Error("failed to fetch table",
			zap.String("source", fe.Source),
			zap.String("policy", t.cfg.Fetch.OnError),
			zap.Error(fe.Err))
		t.SetStatus("Error fetching data: " + fe.Message())
		if t.cfg.Fetch.OnError == config.OnErrorExit {
			return fe
		}
		t.table.RenderFrame()
		return nil
	}

	t.table.SetData(rows)
	t.logger.Info("table loaded", zap.String("source", t.source), zap.Int("rows", len(rows)))
	t.SetStatus(fmt.Sprintf("Loaded %d rows from %s", len(rows), t.source))
	return nil
}

// Export writes the current dataset to filePath.
func (t *MainWindow) Export(filePath string) error {
	if err := ExportRows(t.model.Rows(), filePath); err != nil {
		t.logger.Error("export failed", zap.String("path", filePath), zap.Error(err))
		t.SetStatus("Export failed: " + err.Error())
		return err
	}
	t.logger.Info("table exported", zap.String("path", filePath), zap.Int("rows", t.model.RowCount()))
	t.SetStatus("Exported to " + filePath)
	return nil
}

// exportData asks for a destination and exports the dataset in format.
func (t *MainWindow) exportData(format ExportFormat) {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		filePath := writer.URI().Path()
		writer.Close()

		if err := t.Export(filePath); err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		dialog.ShowInformation("Export Successful",
			fmt.Sprintf("Data exported successfully to:\n%s", filePath), t.w)
	}, t.w)

	saveDialog.SetFileName(cleanFilename(t.source) + format.Extension())
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{format.Extension()}))
	saveDialog.Show()
}

// ShowAndRun shows the window and runs the application until it is closed.
func (t *MainWindow) ShowAndRun() {
	t.table.RenderFrame()
	t.w.ShowAndRun()
}
