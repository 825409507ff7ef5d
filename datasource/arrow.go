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

package datasource

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"sheetview/datatable"
)

// tableRows flattens an Arrow table into string rows. The first row holds
// the field names, like the header row of a sheet.
func tableRows(table arrow.Table) (datatable.Rows, error) {
	schema := table.Schema()
	header := make(datatable.Row, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	rows := make(datatable.Rows, 0, table.NumRows()+1)
	rows = append(rows, header)
	if table.NumRows() == 0 {
		return rows, nil
	}

	tr :=array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		numRows := int(rec.NumRows())
		for rowIdx := 0; rowIdx < numRows; rowIdx++ {
			row := make(datatable.Row, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				row[colIdx] = formatValue(col, rowIdx)
			}
			rows = append(rows, row)
		}
	}
	if tr.Err() != nil {
		return nil, fmt.Errorf("error reading table: %w", tr.Err())
	}
	return rows, nil
}

// formatValue converts an Arrow column value at a specific position to a string
func formatValue(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)

	case arrow.LARGE_STRING:
		return col.(*array.LargeString).Value(pos)

	case arrow.BINARY:
		return string(col.(*array.Binary).Value(pos))

	case arrow.BOOL:
		return fmt.Sprintf("%v", col.(*array.Boolean).Value(pos))

	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime().Format("2006-01-02")

	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime().Format("2006-01-02")

	case arrow.DECIMAL128:
		d128 := col.(*array.Decimal128)
		scale := d128.DataType().(*arrow.Decimal128Type).Scale
		return d128.Value(pos).ToString(scale)

	case arrow.INT8:
		return fmt.Sprintf("%d", col.(*array.Int8).Value(pos))

	case arrow.INT16:
		return fmt.Sprintf("%d", col.(*array.Int16).Value(pos))

	case arrow.INT32:
		return fmt.Sprintf("%d", col.(*array.Int32).Value(pos))

	case arrow.INT64:
		return fmt.Sprintf("%d", col.(*array.Int64).Value(pos))

	case arrow.UINT8:
		return fmt.Sprintf("%d", col.(*array.Uint8).Value(pos))

	case arrow.UINT16:
		return fmt.Sprintf("%d", col.(*array.Uint16).Value(pos))

	case arrow.UINT32:
		return fmt.Sprintf("%d", col.(*array.Uint32).Value(pos))

	case arrow.UINT64:
		return fmt.Sprintf("%d", col.(*array.Uint64).Value(pos))

	case arrow.FLOAT16:
		return col.(*array.Float16).Value(pos).String()

	case arrow.FLOAT32:
		return fmt.Sprintf("%g", col.(*array.Float32).Value(pos))

	case arrow.FLOAT64:
		return fmt.Sprintf("%g", col.(*array.Float64).Value(pos))

	case arrow.TIMESTAMP:
		ts := col.(*array.Timestamp)
		unit := ts.DataType().(*arrow.TimestampType).Unit
		return ts.Value(pos).ToTime(unit).Format("2006-01-02 15:04:05.999999999")

	default:
		return col.ValueStr(pos)
	}
}
