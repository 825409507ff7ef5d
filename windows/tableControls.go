package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sheetview/datatable"
)

// sliderSteps is the resolution of the logarithmic sliders.
const sliderSteps = 1000

// tableControls is the strip above the header: display toggles, the row
// count slider and the scroll-to-row slider.
type tableControls struct {
	view *TableView

	striped   *widget.Check
	resizable *widget.Check
	clickable *widget.Check

	rowsLabel    *widget.Label
	rowsSlider   *widget.Slider
	scrollLabel  *widget.Label
	scrollSlider *widget.Slider

	content fyne.CanvasObject
	syncing bool
}

func newTableControls(view *TableView) *tableControls {
	c := &tableControls{view: view}
	m := view.model

	c.striped = widget.NewCheck("Striped", func(on bool) {
		if c.syncing {
			return
		}
		m.SetStriped(on)
		view.RenderFrame()
	})
	c.resizable = widget.NewCheck("Resizable columns", func(on bool) {
		if c.syncing {
			return
		}
		m.SetResizable(on)
		view.RenderFrame()
	})
	c.clickable = widget.NewCheck("Clickable rows", func(on bool) {
		if c.syncing {
			return
		}
		m.SetClickable(on)
		view.RenderFrame()
	})

	c.rowsLabel = widget.NewLabel("")
	c.rowsSlider = widget.NewSlider(0, sliderSteps)
	c.rowsSlider.OnChanged = func(pos float64) {
		if c.syncing {
			return
		}
		scale := datatable.LogScale{Max: datatable.MaxVisibleRows}
		m.SetVisibleRowCount(scale.Value(pos / sliderSteps))
		view.RenderFrame()
	}

	c.scrollLabel = widget.NewLabel("")
	c.scrollSlider = widget.NewSlider(0, sliderSteps)
	c.scrollSlider.OnChanged = func(pos float64) {
		if c.syncing {
			return
		}
		m.RequestScrollTo(c.scrollTarget(pos))
		view.RenderFrame()
	}

	c.content = container.NewVBox(
		container.NewHBox(c.striped, c.resizable, c.clickable),
		container.NewBorder(nil, nil, c.rowsLabel, nil, c.rowsSlider),
		container.NewBorder(nil, nil, c.scrollLabel, nil, c.scrollSlider),
	)
	c.sync()
	return c
}

// scrollTarget maps a scroll slider position onto [0, visible row count].
func (c *tableControls) scrollTarget(pos float64) int {
	scale := datatable.LogScale{Max: c.view.model.VisibleRowCount()}
	return scale.Value(pos / sliderSteps)
}

// sync copies the model state into the controls without firing their handlers.
func (c *tableControls) sync() {
	c.syncing = true
	defer func() { c.syncing = false }()

	m := c.view.model
	cfg := m.Config()
	c.striped.SetChecked(cfg.Striped)
	c.resizable.SetChecked(cfg.Resizable)
	c.clickable.SetChecked(cfg.Clickable)

	rows := m.VisibleRowCount()
	scale := datatable.LogScale{Max: datatable.MaxVisibleRows}
	if scale.Value(c.rowsSlider.Value/sliderSteps) != rows {
		c.rowsSlider.SetValue(scale.Position(rows) * sliderSteps)
	}
	c.rowsLabel.SetText(fmt.Sprintf("Num rows: %d", rows))
	c.scrollLabel.SetText(fmt.Sprintf("Row to scroll to: %d", c.scrollTarget(c.scrollSlider.Value)))
}
