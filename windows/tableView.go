// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"sheetview/datatable"
)

const checkLabel = "Click me"

// TableView renders a TableModel: a control strip, a header row and a
// virtualized body in which only the rows intersecting the viewport exist as
// widgets.
//
// All input handlers mutate the model and then call RenderFrame, so the view
// never holds state the model does not know about, apart from scroll offset
// and dragged column widths.
type TableView struct {
	widget.BaseWidget

	model   *datatable.TableModel
	columns []datatable.Column
	logger  *zap.Logger

	override  []float32 // dragged widths, 0 = not dragged
	widths    []float32
	rowHeight float32
	offset    float32

	controls *tableControls
	header   *tableHeader
	body     *tableBody
	scroll   *container.Scroll

	autoScrolls int

	// OnSelectionChanged is called after a row tap changed the selection.
	OnSelectionChanged func(selection []int)
}

// NewTableView creates a table view over model.
func NewTableView(model *datatable.TableModel, logger *zap.Logger) *TableView {
	if model == nil {
		model = datatable.NewTableModel()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	columns := datatable.DefaultColumns()
	v := &TableView{
		model:    model,
		columns:  columns,
		logger:   logger,
		override: make([]float32, len(columns)),
	}
	v.body = newTableBody(v)
	v.scroll = container.NewVScroll(v.body)
	v.scroll.OnScrolled = func(p fyne.Position) {
		v.offset = p.Y
		v.body.bind()
	}
	v.header = newTableHeader(v)
	v.controls = newTableControls(v)

	v.ExtendBaseWidget(v)
	return v
}

// Model returns the model rendered by this view.
func (v *TableView) Model() *datatable.TableModel {
	return v.model
}

// SetData replaces the dataset and redraws.
func (v *TableView) SetData(rows datatable.Rows) {
	v.model.ReplaceData(rows)
	v.RenderFrame()
}

// RenderFrame applies a pending scroll request exactly once and redraws the
// view from the model.
func (v *TableView) RenderFrame() {
	if target, ok := v.model.ConsumeScrollTarget(); ok {
		v.scrollToRow(target)
	}
	v.Refresh()
}

// MaterializedRows returns how many row widgets exist. It is bounded by the
// number of rows that fit in the viewport, not by the visible row count.
func (v *TableView) MaterializedRows() int {
	return len(v.body.pool)
}

// BoundRange returns the half-open range of row indices currently bound to
// row widgets.
func (v *TableView) BoundRange() (start, end int) {
	return v.body.start, v.body.end
}

// ScrollOffset returns the vertical scroll offset of the body.
func (v *TableView) ScrollOffset() float32 {
	return v.offset
}

// AutoScrolls returns how many scroll requests have been applied.
func (v *TableView) AutoScrolls() int {
	return v.autoScrolls
}

// RowHeight returns the height of one body row.
func (v *TableView) RowHeight() float32 {
	return v.measureRowHeight()
}

// ColumnWidths returns the widths of the last layout pass.
func (v *TableView) ColumnWidths() []float32 {
	out := make([]float32, len(v.widths))
	copy(out, v.widths)
	return out
}

// CreateRenderer implements fyne.Widget interface
func (v *TableView) CreateRenderer() fyne.WidgetRenderer {
	v.measureRowHeight()
	return &tableViewRenderer{
		view:    v,
		objects: []fyne.CanvasObject{v.controls.content, v.header, v.scroll},
	}
}

func (v *TableView) measureRowHeight() float32 {
	if v.rowHeight > 0 {
		return v.rowHeight
	}
	h := widget.NewLabel("0").MinSize().Height
	if c := widget.NewCheck(checkLabel, nil).MinSize().Height; c > h {
		h = c
	}
	v.rowHeight = h
	return h
}

func (v *TableView) viewport() datatable.Viewport {
	return datatable.Viewport{
		Offset:    v.offset,
		Height:    v.scroll.Size().Height,
		RowHeight: v.measureRowHeight(),
	}
}

func (v *TableView) contentHeight() float32 {
	return v.viewport().ContentHeight(v.model.VisibleRowCount())
}

func (v *TableView) totalWidth() float32 {
	total := float32(0)
	for _, w := range v.widths {
		total += w
	}
	return total
}

// contentWidths measures the auto sized columns: the header title, and for
// the row column the widest index, for the interaction column the checkbox.
func (v *TableView) contentWidths() []float32 {
	content := make([]float32, len(v.columns))
	pad := 2 * theme.InnerPadding()
	for i, col := range v.columns {
		if col.Sizing != datatable.SizingAuto {
			continue
		}
		content[i] = fyne.MeasureText(col.Title, theme.TextSize(), fyne.TextStyle{Bold: true}).Width + pad
	}

	last := v.model.VisibleRowCount() - 1
	if last < 0 {
		last = 0
	}
	index := fyne.MeasureText(strconv.Itoa(last), theme.TextSize(), fyne.TextStyle{}).Width + pad
	content[datatable.ColumnRow] = max(content[datatable.ColumnRow], index)

	check := widget.NewCheck(checkLabel, nil).MinSize().Width
	content[datatable.ColumnInteraction] = max(content[datatable.ColumnInteraction], check)
	return content
}

func (v *TableView) layoutColumns(width float32) {
	v.widths = datatable.LayoutColumns(v.columns, v.contentWidths(), v.override, width)
}

// syncBody resizes the virtual body to the row count, lets the scroller clamp
// its offset and rebinds the visible rows.
func (v *TableView) syncBody() {
	content := fyne.NewSize(v.totalWidth(), v.contentHeight())
	v.body.Resize(content.Max(v.scroll.Size()))
	v.scroll.Refresh()
	v.offset = v.scroll.Offset.Y
	v.body.bind()
}

func (v *TableView) scrollToRow(index int) {
	count := v.model.VisibleRowCount()
	if count == 0 {
		return
	}

	content := fyne.NewSize(v.totalWidth(), v.contentHeight())
	v.body.Resize(content.Max(v.scroll.Size()))

	v.offset = v.viewport().BringIntoView(index, count)
	v.scroll.Offset = fyne.NewPos(v.scroll.Offset.X, v.offset)
	v.autoScrolls++
	v.logger.Debug("scrolled to row", zap.Int("row", index), zap.Float32("offset", v.offset))
}

func (v *TableView) toggleRow(index int) {
	if !v.model.Config().Clickable {
		return
	}
	v.model.ToggleRowSelection(index)
	if v.OnSelectionChanged != nil {
		v.OnSelectionChanged(v.model.Selection())
	}
	v.RenderFrame()
}

func (v *TableView) resizeColumn(column int, delta float32) {
	if !v.model.Config().Resizable || column < 0 || column >= len(v.widths) {
		return
	}
	v.override[column] = v.columns[column].Clamp(v.widths[column] + delta)
	v.Refresh()
}

type tableViewRenderer struct {
	view    *TableView
	objects []fyne.CanvasObject
}

func (r *tableViewRenderer) Layout(size fyne.Size) {
	v := r.view
	v.layoutColumns(size.Width)

	controlsHeight := v.controls.content.MinSize().Height
	v.controls.content.Move(fyne.NewPos(0, 0))
	v.controls.content.Resize(fyne.NewSize(size.Width, controlsHeight))

	headerHeight := v.header.MinSize().Height
	v.header.Move(fyne.NewPos(0, controlsHeight))
	v.header.Resize(fyne.NewSize(size.Width, headerHeight))
	v.header.Refresh()

	bodyTop := controlsHeight + headerHeight
	v.scroll.Move(fyne.NewPos(0, bodyTop))
	v.scroll.Resize(fyne.NewSize(size.Width, max(size.Height-bodyTop, 0)))

	v.syncBody()
}

func (r *tableViewRenderer) MinSize() fyne.Size {
	v := r.view
	controls := v.controls.content.MinSize()
	header := v.header.MinSize()
	return fyne.NewSize(
		max(controls.Width, header.Width),
		controls.Height+header.Height+3*v.measureRowHeight(),
	)
}

func (r *tableViewRenderer) Refresh() {
	r.view.controls.sync()
	r.Layout(r.view.Size())
}

func (r *tableViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *tableViewRenderer) Destroy() {}
