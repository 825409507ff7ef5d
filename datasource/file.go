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
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"go.uber.org/zap"

	"sheetview/datatable"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// DetectFileType determines the type of file based on its extension
func DetectFileType(filePath string) FileType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// FileSource reads a local CSV, Parquet or JSON file.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file:" + filepath.Base(s.Path)
}

// FetchTable implements Source.
func (s *FileSource) FetchTable(ctx context.Context) (datatable.Rows, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		rows datatable.Rows
		err  error
	)
	switch DetectFileType(s.Path) {
	case FileTypeCSV:
		rows, err = s.loadCSVFile(logger)
	case FileTypeParquet:
		rows, err = s.loadParquetFile(ctx)
	case FileTypeJSON:
		rows, err = s.loadJSONFile()
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(s.Path))
	}
	if err != nil {
		return nil, newFetchError(s.Name(), err)
	}

	logger.Info("file loaded", zap.String("path", s.Path), zap.Int("rows", len(rows)))
	return rows, nil
}

// separators are tried in this order; the first with the highest count wins.
var separators = []rune{',', ';', '\t', '|'}

// detectCSVSeparator tries to detect the CSV separator from the first line
func detectCSVSeparator(r io.Reader) rune {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return ','
	}
	firstLine := scanner.Text()

	maxCount := 0
	detected := ','
	for _, sep := range separators {
		if count := strings.Count(firstLine, string(sep)); count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected
}

// getSeparatorName returns a human-readable name for the separator
func getSeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// loadCSVFile keeps every cell as text; rows may differ in length.
func (s *FileSource) loadCSVFile(logger *zap.Logger) (datatable.Rows, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	separator := detectCSVSeparator(bytes.NewReader(content))
	logger.Debug("csv separator detected", zap.String("separator", getSeparatorName(separator)))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = separator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows := datatable.Rows{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV file: %w", err)
		}
		row := make(datatable.Row, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadParquetFile reads the whole file into an Arrow table
func (s *FileSource) loadParquetFile(ctx context.Context) (datatable.Rows, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(nil)))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	return tableRows(table)
}

// loadJSONFile accepts an array of arrays (rows of cells), an array of
// objects, or a single object. Objects become a header row of their sorted
// keys followed by one row per object.
func (s *FileSource) loadJSONFile() (datatable.Rows, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyData
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	switch v := doc.(type) {
	case map[string]interface{}:
		return objectRows([]map[string]interface{}{v}), nil
	case []interface{}:
		return arrayRows(v)
	default:
		return nil, fmt.Errorf("failed to parse JSON: expected an array or object, got %T", doc)
	}
}

func arrayRows(items []interface{}) (datatable.Rows, error) {
	if len(items) == 0 {
		return datatable.Rows{}, nil
	}

	if _, ok := items[0].(map[string]interface{}); ok {
		objects := make([]map[string]interface{}, 0, len(items))
		for i, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("failed to parse JSON: element %d is not an object", i)
			}
			objects = append(objects, obj)
		}
		return objectRows(objects), nil
	}

	rows := make(datatable.Rows, 0, len(items))
	for i, item := range items {
		cells, ok := item.([]interface{})
		if !ok {
			return nil, fmt.Errorf("failed to parse JSON: element %d is not an array", i)
		}
		row := make(datatable.Row, len(cells))
		for j, cell := range cells {
			row[j] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func objectRows(objects []map[string]interface{}) datatable.Rows {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, obj := range objects {
		for k := range obj {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	rows := make(datatable.Rows, 0, len(objects)+1)
	rows = append(rows, datatable.Row(keys))
	for _, obj := range objects {
		row := make(datatable.Row, len(keys))
		for i, k := range keys {
			row[i] = cellString(obj[k])
		}
		rows = append(rows, row)
	}
	return rows
}
