package windows

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"sheetview/datatable"
)

// tableBody is the scrolled content of a TableView. Its minimum size is the
// size of all logical rows, but it only holds widgets for the rows that
// intersect the viewport, recycled from a pool as the offset changes.
type tableBody struct {
	widget.BaseWidget
	view *TableView

	pool       []*tableRow
	objects    []fyne.CanvasObject
	start, end int
}

func newTableBody(view *TableView) *tableBody {
	b := &tableBody{view: view}
	b.ExtendBaseWidget(b)
	return b
}

// bind attaches the pooled rows to the rows visible at the current offset.
// The pool only grows when the viewport fits more rows than before.
func (b *tableBody) bind() {
	v := b.view
	start, end := v.viewport().VisibleRange(v.model.VisibleRowCount())
	n := end - start

	for len(b.pool) < n {
		row := newTableRow(v)
		b.pool = append(b.pool, row)
		b.objects = append(b.objects, row)
	}
	b.start, b.end = start, end

	width := max(b.Size().Width, v.totalWidth())
	for i, row := range b.pool {
		if i >= n {
			row.Hide()
			continue
		}
		index := start + i
		row.Move(fyne.NewPos(0, float32(index)*v.rowHeight))
		row.Resize(fyne.NewSize(width, v.rowHeight))
		row.bind(index)
		row.Show()
	}
}

// CreateRenderer implements fyne.Widget interface
func (b *tableBody) CreateRenderer() fyne.WidgetRenderer {
	return &tableBodyRenderer{body: b}
}

type tableBodyRenderer struct {
	body *tableBody
}

func (r *tableBodyRenderer) Layout(fyne.Size) {
	r.body.bind()
}

func (r *tableBodyRenderer) MinSize() fyne.Size {
	v := r.body.view
	return fyne.NewSize(v.totalWidth(), v.contentHeight())
}

func (r *tableBodyRenderer) Refresh() {
	r.body.bind()
}

func (r *tableBodyRenderer) Objects() []fyne.CanvasObject {
	return r.body.objects
}

func (r *tableBodyRenderer) Destroy() {}

// tableRow is one recycled body row.
type tableRow struct {
	widget.BaseWidget
	view  *TableView
	index int

	background *canvas.Rectangle
	indexLabel *widget.Label
	check      *widget.Check
	line       *canvas.Line
	clipped    *widget.Label
	content    *widget.Label
}

func newTableRow(view *TableView) *tableRow {
	r := &tableRow{
		view:       view,
		index:      -1,
		background: canvas.NewRectangle(color.Transparent),
		indexLabel: widget.NewLabel(""),
		check:      widget.NewCheck(checkLabel, nil),
		line:       canvas.NewLine(theme.Color(theme.ColorNameForeground)),
		clipped:    widget.NewLabel(""),
		content:    widget.NewLabel(""),
	}
	r.line.StrokeWidth = 1
	r.clipped.Truncation = fyne.TextTruncateClip
	r.content.Truncation = fyne.TextTruncateEllipsis
	r.ExtendBaseWidget(r)
	return r
}

// bind shows displayed row index. The checkbox handler is detached while
// its state is restored so rebinding never writes back to the model.
func (r *tableRow) bind(index int) {
	m := r.view.model
	r.index = index

	r.indexLabel.SetText(strconv.Itoa(index))

	r.check.OnChanged = nil
	r.check.SetChecked(m.IsChecked(index))
	r.check.OnChanged = func(checked bool) {
		m.SetChecked(index, checked)
		r.view.RenderFrame()
	}

	r.clipped.SetText(datatable.LongText(index))
	r.content.SetText(datatable.ContentText(m.Rows(), index))

	r.background.FillColor = r.backgroundColor()
	r.background.Refresh()
	r.Refresh()
}

func (r *tableRow) backgroundColor() color.Color {
	cfg := r.view.model.Config()
	switch {
	case r.view.model.IsSelected(r.index):
		return theme.Color(theme.ColorNameSelection)
	case cfg.Striped && r.index%2 == 1:
		return stripeColor()
	default:
		return color.Transparent
	}
}

// stripeColor falls back to the hover color for themes without a stripe color.
func stripeColor() color.Color {
	c := theme.Color(colorNameStripe)
	if _, _, _, a := c.RGBA(); a == 0 {
		return theme.Color(theme.ColorNameHover)
	}
	return c
}

// Tapped toggles the selection of the row when rows are clickable.
func (r *tableRow) Tapped(*fyne.PointEvent) {
	if r.index < 0 {
		return
	}
	r.view.toggleRow(r.index)
}

// CreateRenderer implements fyne.Widget interface
func (r *tableRow) CreateRenderer() fyne.WidgetRenderer {
	return &tableRowRenderer{
		row: r,
		objects: []fyne.CanvasObject{
			r.background, r.indexLabel, r.check, r.line, r.clipped, r.content,
		},
	}
}

type tableRowRenderer struct {
	row     *tableRow
	objects []fyne.CanvasObject
}

func (r *tableRowRenderer) Layout(size fyne.Size) {
	row := r.row
	widths := row.view.widths
	if len(widths) <= datatable.ColumnContent {
		return
	}

	row.background.Move(fyne.NewPos(0, 0))
	row.background.Resize(size)

	x := float32(0)
	place := func(obj fyne.CanvasObject, width float32) {
		obj.Move(fyne.NewPos(x, 0))
		obj.Resize(fyne.NewSize(width, size.Height))
		x += width
	}

	place(row.indexLabel, widths[datatable.ColumnRow])
	place(row.check, widths[datatable.ColumnInteraction])

	pad := theme.Padding()
	lineWidth := expandingLineWidth(widths[datatable.ColumnExpanding] - 2*pad)
	mid := size.Height / 2
	row.line.Position1 = fyne.NewPos(x+pad, mid)
	row.line.Position2 = fyne.NewPos(x+pad+lineWidth, mid)
	x += widths[datatable.ColumnExpanding]

	place(row.clipped, widths[datatable.ColumnClipped])
	place(row.content, max(size.Width-x, widths[datatable.ColumnContent]))
}

// expandingLineWidth clamps the decorative line to [20, 200].
func expandingLineWidth(available float32) float32 {
	return min(max(available, 20), 200)
}

func (r *tableRowRenderer) MinSize() fyne.Size {
	v := r.row.view
	return fyne.NewSize(v.totalWidth(), v.measureRowHeight())
}

func (r *tableRowRenderer) Refresh() {
	r.Layout(r.row.Size())
	r.row.line.StrokeColor = theme.Color(theme.ColorNameForeground)
	canvas.Refresh(r.row.line)
}

func (r *tableRowRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *tableRowRenderer) Destroy() {}
