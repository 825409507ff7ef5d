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

package datatable

import "fmt"

// Sizing selects how a column width is computed.
type Sizing int

const (
	// SizingAuto sizes the column to its widest content.
	SizingAuto Sizing = iota
	// SizingResizable starts at Initial and may be dragged within [Min, Max].
	SizingResizable
	// SizingClip keeps Initial (at least Min) and clips overflowing text.
	SizingClip
	// SizingRemainder takes whatever horizontal space is left.
	SizingRemainder
)

// String returns the string representation of a Sizing.
func (s Sizing) String() string {
	switch s {
	case SizingAuto:
		return "Auto"
	case SizingResizable:
		return "Resizable"
	case SizingClip:
		return "Clip"
	case SizingRemainder:
		return "Remainder"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Column describes one column of the table view.
type Column struct {
	Title   string
	Sizing  Sizing
	Initial float32
	Min     float32
	// Max of 0 means unbounded.
	Max float32
}

// Column indices of the default layout.
const (
	ColumnRow = iota
	ColumnInteraction
	ColumnExpanding
	ColumnClipped
	ColumnContent
)

// DefaultColumns returns the five columns of the sheet table.
func DefaultColumns() []Column {
	return []Column{
		{Title: "Row", Sizing: SizingAuto},
		{Title: "Interaction", Sizing: SizingAuto},
		{Title: "Expanding content", Sizing: SizingResizable, Initial: 100, Min: 40, Max: 300},
		{Title: "Clipped text", Sizing: SizingClip, Initial: 100, Min: 40},
		{Title: "Content", Sizing: SizingRemainder},
	}
}

// Clamp limits w to the column's [Min, Max] range.
func (c Column) Clamp(w float32) float32 {
	if w < c.Min {
		w = c.Min
	}
	if c.Max > 0 && w > c.Max {
		w = c.Max
	}
	return w
}

// LayoutColumns computes the width of every column.
//
// content holds the measured content width per column and is only consulted
// for auto columns. override holds user-dragged widths (0 = none) and is only
// honoured for resizable columns. Remainder columns share the space left in
// available and never go below their Min.
func LayoutColumns(cols []Column, content, override []float32, available float32) []float32 {
	widths := make([]float32, len(cols))
	used := float32(0)
	remainders := 0

	for i, col := range cols {
		switch col.Sizing {
		case SizingAuto:
			w := at(content, i)
			if col.Initial > w {
				w = col.Initial
			}
			widths[i] = col.Clamp(w)
		case SizingResizable:
			w := col.Initial
			if o := at(override, i); o > 0 {
				w = o
			}
			widths[i] = col.Clamp(w)
		case SizingClip:
			widths[i] = col.Clamp(col.Initial)
		case SizingRemainder:
			remainders++
			continue
		}
		used += widths[i]
	}

	if remainders == 0 {
		return widths
	}
	share := (available - used) / float32(remainders)
	if share < 0 {
		share = 0
	}
	for i, col := range cols {
		if col.Sizing == SizingRemainder {
			widths[i] = col.Clamp(share)
		}
	}
	return widths
}

func at(values []float32, i int) float32 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}
