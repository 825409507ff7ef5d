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

import "sort"

// TableModel owns the dataset, the display configuration, the selection set,
// the per-row checkbox state and the pending scroll target.
//
// Every operation is total: out-of-range indices are ignored or clamped, never
// reported. A TableModel is mutated from the UI goroutine only and is not safe
// for concurrent use.
type TableModel struct {
	rows         Rows
	config       DisplayConfig
	selection    map[int]struct{}
	checked      map[int]bool
	scrollTarget int
	hasTarget    bool
}

// NewTableModel creates an empty model with the default display configuration.
func NewTableModel() *TableModel {
	return &TableModel{
		rows:      Rows{},
		config:    DefaultDisplayConfig(),
		selection: make(map[int]struct{}),
		checked:   make(map[int]bool),
	}
}

// ReplaceData swaps in a new dataset. Selection and checkbox state refer to
// display positions, so they are cleared with the data they described.
func (m *TableModel) ReplaceData(rows Rows) {
	data := make(Rows, len(rows))
	copy(data, rows)
	m.rows = data
	m.selection = make(map[int]struct{})
	m.checked = make(map[int]bool)
}

// Rows returns the current dataset.
func (m *TableModel) Rows() Rows {
	return m.rows
}

// RowCount returns the dataset length, not the visible row count.
func (m *TableModel) RowCount() int {
	return len(m.rows)
}

// Cell returns the cell text, or "" when the row or column does not exist.
func (m *TableModel) Cell(row, col int) string {
	if row < 0 || row >= len(m.rows) {
		return ""
	}
	r := m.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ToggleRowSelection adds index to the selection, or removes it if present.
func (m *TableModel) ToggleRowSelection(index int) {
	if index < 0 {
		return
	}
	if _, ok := m.selection[index]; ok {
		delete(m.selection, index)
		return
	}
	m.selection[index] = struct{}{}
}

// IsSelected reports whether index is in the selection.
func (m *TableModel) IsSelected(index int) bool {
	_, ok := m.selection[index]
	return ok
}

// Selection returns the selected indices in ascending order.
func (m *TableModel) Selection() []int {
	out := make([]int, 0, len(m.selection))
	for i := range m.selection {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// RequestScrollTo records a one-shot scroll target, replacing any target
// that has not been consumed yet.
func (m *TableModel) RequestScrollTo(index int) {
	if index < 0 {
		return
	}
	m.scrollTarget = index
	m.hasTarget = true
}

// ConsumeScrollTarget returns the pending target and clears it.
func (m *TableModel) ConsumeScrollTarget() (int, bool) {
	if !m.hasTarget {
		return 0, false
	}
	m.hasTarget = false
	return m.scrollTarget, true
}

// SetChecked stores the checkbox state of a displayed row.
func (m *TableModel) SetChecked(index int, checked bool) {
	if index < 0 {
		return
	}
	if !checked {
		delete(m.checked, index)
		return
	}
	m.checked[index] = true
}

// IsChecked returns the checkbox state of a displayed row.
func (m *TableModel) IsChecked(index int) bool {
	return m.checked[index]
}

// Config returns a copy of the display configuration.
func (m *TableModel) Config() DisplayConfig {
	return m.config
}

func (m *TableModel) SetStriped(striped bool) {
	m.config.Striped = striped
}

func (m *TableModel) SetResizable(resizable bool) {
	m.config.Resizable = resizable
}

func (m *TableModel) SetClickable(clickable bool) {
	m.config.Clickable = clickable
}

// SetVisibleRowCount sets the number of displayed rows, clamped to
// [0, MaxVisibleRows].
func (m *TableModel) SetVisibleRowCount(n int) {
	m.config.VisibleRows = clampInt(n, 0, MaxVisibleRows)
}

// VisibleRowCount returns the number of displayed rows.
func (m *TableModel) VisibleRowCount() int {
	return m.config.VisibleRows
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
