package datatable

// Viewport describes the visible window over a list of equal-height rows.
type Viewport struct {
	// Offset is the vertical scroll position of the first visible pixel.
	Offset float32

	// Height is the height of the visible area.
	Height float32

	// RowHeight is the height of every row.
	RowHeight float32
}

// ContentHeight returns the total height of count rows.
func (v Viewport) ContentHeight(count int) float32 {
	if count <= 0 || v.RowHeight <= 0 {
		return 0
	}
	return float32(count) * v.RowHeight
}

// MaxOffset returns the largest offset that still fills the viewport.
func (v Viewport) MaxOffset(count int) float32 {
	limit := v.ContentHeight(count) - v.Height
	if limit < 0 {
		return 0
	}
	return limit
}

// Clamp returns the viewport with its offset pulled into [0, MaxOffset].
func (v Viewport) Clamp(count int) Viewport {
	if v.Offset < 0 {
		v.Offset = 0
	}
	if limit := v.MaxOffset(count); v.Offset > limit {
		v.Offset = limit
	}
	return v
}

// VisibleRange returns the half-open range [start, end) of rows that
// intersect the viewport. It is empty when nothing can be shown.
func (v Viewport) VisibleRange(count int) (start, end int) {
	if count <= 0 || v.RowHeight <= 0 || v.Height <= 0 {
		return 0, 0
	}
	v = v.Clamp(count)

	start = int(v.Offset / v.RowHeight)
	last := int((v.Offset + v.Height) / v.RowHeight)
	// a row that only touches the bottom edge is not visible
	if float32(last)*v.RowHeight >= v.Offset+v.Height {
		last--
	}
	end = last + 1

	if start > count {
		start = count
	}
	if end > count {
		end = count
	}
	if end < start {
		end = start
	}
	return start, end
}

// BringIntoView returns the offset that makes row index fully visible while
// moving as little as possible. Indices past the end are clamped to the last
// row; with no rows the current offset is kept.
func (v Viewport) BringIntoView(index, count int) float32 {
	if count <= 0 || v.RowHeight <= 0 {
		return v.Offset
	}
	index = clampInt(index, 0, count-1)

	top := float32(index) * v.RowHeight
	bottom := top + v.RowHeight

	offset := v.Offset
	switch {
	case top < offset:
		offset = top
	case bottom > offset+v.Height:
		offset = bottom - v.Height
	}

	v.Offset = offset
	return v.Clamp(count).Offset
}
