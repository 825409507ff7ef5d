package windows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetview/datasource"
	"sheetview/datatable"
)

func TestColumnName(t *testing.T) {
	tests := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		701: "ZZ",
		702: "AAA",
	}
	for in, want := range tests {
		assert.Equal(t, want, columnName(in), "column %d", in)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/out.PARQUET")
	require.NoError(t, err)
	assert.Equal(t, FormatParquet, f)
	assert.Equal(t, ".parquet", f.Extension())

	f, err = FormatFromPath("out.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = FormatFromPath("out.json")
	require.NoError(t, err)
	assert.Equal(t, "JSON", f.String())

	_, err = FormatFromPath("out.txt")
	assert.ErrorIs(t, err, ErrExportFailed)
}

func TestExportRowsRoundTrip(t *testing.T) {
	rows := datatable.Rows{
		{"name", "note", "qty"},
		{"apple", "red, sweet", "3"},
		{"pear"},
	}
	want := datatable.Rows{
		{"A", "B", "C"},
		{"name", "note", "qty"},
		{"apple", "red, sweet", "3"},
		{"pear", "", ""},
	}

	for _, ext := range []string{".parquet", ".csv", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "export"+ext)
			require.NoError(t, ExportRows(rows, path))

			got, err := (&datasource.FileSource{Path: path}).FetchTable(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestExportRowsEmpty(t *testing.T) {
	err := ExportRows(datatable.Rows{}, filepath.Join(t.TempDir(), "empty.csv"))
	assert.ErrorIs(t, err, ErrExportFailed)

	err = ExportRows(datatable.Rows{{}}, filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrExportFailed)
}

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "sheetsabc_1", cleanFilename("sheets:abc 1"))
	assert.Equal(t, "sheet", cleanFilename("::"))
}
