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

// Package datatable holds the state behind the sheet table view: the fetched
// rows, the display configuration, the selection and the pending scroll target.
// Nothing in this package renders; the fyne widgets live in package windows.
package datatable

import (
	"fmt"
	"strings"
)

// Row is one spreadsheet row. Rows may have different lengths.
type Row []string

// Rows is an ordered dataset as returned by a data source.
type Rows []Row

// Width returns the length of the longest row.
func (r Rows) Width() int {
	width := 0
	for _, row := range r {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// MaxVisibleRows is the upper bound of the visible-row-count setting.
const MaxVisibleRows = 100_000

// PlaceholderContent is shown in the content column for rows past the end of
// the dataset.
const PlaceholderContent = "Thousands of rows of even height"

// DisplayConfig holds the user-tunable table settings.
type DisplayConfig struct {
	// Striped paints alternating row backgrounds.
	Striped bool

	// Resizable lets the user drag the resizable column boundary.
	Resizable bool

	// Clickable turns a tap on a row into a selection toggle.
	Clickable bool

	// VisibleRows is the number of body rows to display, independent of the
	// dataset length.
	VisibleRows int
}

// DefaultDisplayConfig returns the settings a new table starts with.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Striped:     true,
		Resizable:   true,
		Clickable:   true,
		VisibleRows: 1000,
	}
}

// LongText returns the synthetic text of the clipped column for a row.
func LongText(row int) string {
	return fmt.Sprintf("Row %d has some long text that you may want to clip, or it will take up too much horizontal space!", row)
}

// ContentText returns the trailing content of a displayed row: the dataset
// cells joined together, or the placeholder for rows beyond the dataset.
func ContentText(rows Rows, row int) string {
	if row < 0 || row >= len(rows) {
		return PlaceholderContent
	}
	return strings.Join(rows[row], " | ")
}
