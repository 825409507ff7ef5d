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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"sheetview/datatable"
)

// ErrExportFailed is returned when export operation fails.
var ErrExportFailed = errors.New("export failed")

// ExportFormat represents the supported export formats
type ExportFormat int

const (
	FormatParquet ExportFormat = iota
	FormatCSV
	FormatJSON
)

// Extension returns the file extension written for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}

func (f ExportFormat) String() string {
	switch f {
	case FormatParquet:
		return "Parquet"
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	default:
		return fmt.Sprintf("ExportFormat(%d)", int(f))
	}
}

// FormatFromPath picks the export format from the file extension.
func FormatFromPath(filePath string) (ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".parquet":
		return FormatParquet, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: unsupported extension %q", ErrExportFailed, filepath.Ext(filePath))
	}
}

// ExportRows writes rows to filePath in the format chosen by its extension.
func ExportRows(rows datatable.Rows, filePath string) error {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return err
	}

	table, err := rowsTable(rows)
	if err != nil {
		return err
	}
	defer table.Release()

	switch format {
	case FormatParquet:
		err = ExportToParquet(table, filePath)
	case FormatCSV:
		err = ExportToCSV(table, filePath)
	case FormatJSON:
		err = ExportToJSON(table, filePath)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// columnName returns the spreadsheet letter of column i: A..Z, AA, AB, ...
func columnName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

// rowsTable builds an Arrow table of nullable string columns named after the
// spreadsheet columns. Cells missing from short rows become nulls.
func rowsTable(rows datatable.Rows) (arrow.Table, error) {
	width := rows.Width()
	if len(rows) == 0 || width == 0 {
		return nil, fmt.Errorf("%w: no data to export", ErrExportFailed)
	}

	fields := make([]arrow.Field, width)
	for i := range fields {
		fields[i] = arrow.Field{Name: columnName(i), Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for _, row := range rows {
		for col := 0; col < width; col++ {
			sb := b.Field(col).(*array.StringBuilder)
			if col < len(row) {
				sb.Append(row[col])
			} else {
				sb.AppendNull()
			}
		}
	}

	rec := b.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

// ExportToParquet exports the Arrow table to a Parquet file
func ExportToParquet(table arrow.Table, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ExportToCSV exports the Arrow table to a CSV file with a header row
func ExportToCSV(table arrow.Table, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file, table.Schema(), csv.WithHeader(true), csv.WithNullWriter(""))

	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	for tr.Next() {
		if err := writer.Write(tr.Record()); err != nil {
			return fmt.Errorf("failed to write CSV rows: %w", err)
		}
	}
	if tr.Err() != nil {
		return fmt.Errorf("error reading table: %w", tr.Err())
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return writer.Error()
}

// ExportToJSON exports the Arrow table to a JSON array of objects keyed by
// column name. Null cells are written as JSON null.
func ExportToJSON(table arrow.Table, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	records := make([]map[string]interface{}, 0, table.NumRows())
	schema := table.Schema()

	for tr.Next() {
		rec := tr.Record()
		numRows := rec.NumRows()

		for rowIdx := int64(0); rowIdx < numRows; rowIdx++ {
			record := make(map[string]interface{}, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				fieldName := schema.Field(colIdx).Name
				if col.IsNull(int(rowIdx)) {
					record[fieldName] = nil
					continue
				}
				record[fieldName] = col.ValueStr(int(rowIdx))
			}
			records = append(records, record)
		}
	}

	if tr.Err() != nil {
		return fmt.Errorf("error reading table: %w", tr.Err())
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// cleanFilename removes spaces and special characters from a filename.
func cleanFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "sheet"
	}
	return b.String()
}
