package windows

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"sheetview/datatable"
)

const dividerWidth = 6

// tableHeader shows the column titles and, when columns are resizable, a
// divider after the resizable column that can be dragged.
type tableHeader struct {
	widget.BaseWidget
	view    *TableView
	labels  []*widget.Label
	divider *columnDivider
}

func newTableHeader(view *TableView) *tableHeader {
	h := &tableHeader{view: view}
	for _, col := range view.columns {
		label := widget.NewLabelWithStyle(col.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		label.Truncation = fyne.TextTruncateClip
		h.labels = append(h.labels, label)
	}
	h.divider = newColumnDivider(view, datatable.ColumnExpanding)
	h.ExtendBaseWidget(h)
	return h
}

// CreateRenderer implements fyne.Widget interface
func (h *tableHeader) CreateRenderer() fyne.WidgetRenderer {
	objects := make([]fyne.CanvasObject, 0, len(h.labels)+2)
	separator := widget.NewSeparator()
	objects = append(objects, separator)
	for _, label := range h.labels {
		objects = append(objects, label)
	}
	objects = append(objects, h.divider)
	return &tableHeaderRenderer{header: h, separator: separator, objects: objects}
}

type tableHeaderRenderer struct {
	header    *tableHeader
	separator *widget.Separator
	objects   []fyne.CanvasObject
}

func (r *tableHeaderRenderer) Layout(size fyne.Size) {
	h := r.header
	widths := h.view.widths
	if len(widths) != len(h.labels) {
		return
	}

	x := float32(0)
	dividerX := float32(-1)
	for i, label := range h.labels {
		w := widths[i]
		if i == len(h.labels)-1 {
			w = max(size.Width-x, w)
		}
		label.Move(fyne.NewPos(x, 0))
		label.Resize(fyne.NewSize(w, size.Height))
		x += w
		if i == h.divider.column {
			dividerX = x - dividerWidth/2
		}
	}

	thickness := theme.SeparatorThicknessSize()
	r.separator.Move(fyne.NewPos(0, size.Height-thickness))
	r.separator.Resize(fyne.NewSize(size.Width, thickness))

	if dividerX < 0 || !h.view.model.Config().Resizable {
		h.divider.Hide()
		return
	}
	h.divider.Move(fyne.NewPos(dividerX, 0))
	h.divider.Resize(fyne.NewSize(dividerWidth, size.Height))
	h.divider.Show()
}

func (r *tableHeaderRenderer) MinSize() fyne.Size {
	height := float32(0)
	for _, label := range r.header.labels {
		height = max(height, label.MinSize().Height)
	}
	return fyne.NewSize(r.header.view.totalWidth(), height)
}

func (r *tableHeaderRenderer) Refresh() {
	r.Layout(r.header.Size())
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *tableHeaderRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *tableHeaderRenderer) Destroy() {}

// columnDivider is the drag handle that resizes a column.
type columnDivider struct {
	widget.BaseWidget
	view   *TableView
	column int
	rect   *canvas.Rectangle
}

var (
	_ fyne.Draggable     = (*columnDivider)(nil)
	_ desktop.Cursorable = (*columnDivider)(nil)
)

func newColumnDivider(view *TableView, column int) *columnDivider {
	d := &columnDivider{
		view:   view,
		column: column,
		rect:   canvas.NewRectangle(theme.Color(theme.ColorNameSeparator)),
	}
	d.ExtendBaseWidget(d)
	return d
}

// Dragged resizes the column by the horizontal drag distance.
func (d *columnDivider) Dragged(e *fyne.DragEvent) {
	d.view.resizeColumn(d.column, e.Dragged.DX)
}

// DragEnd implements fyne.Draggable
func (d *columnDivider) DragEnd() {
	if d.column < len(d.view.widths) {
		d.view.logger.Debug("column resized",
			zap.String("column", d.view.columns[d.column].Title),
			zap.Float32("width", d.view.widths[d.column]))
	}
}

// Cursor implements desktop.Cursorable
func (d *columnDivider) Cursor() desktop.Cursor {
	return desktop.HResizeCursor
}

// CreateRenderer implements fyne.Widget interface
func (d *columnDivider) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.rect)
}

// MinSize returns the minimum size of the divider
func (d *columnDivider) MinSize() fyne.Size {
	return fyne.NewSize(dividerWidth, 0)
}
