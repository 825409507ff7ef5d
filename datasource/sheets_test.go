package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func sheetsServer(t *testing.T, status int, body string, gotRanges *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/values:batchGet") {
			http.NotFound(w, r)
			return
		}
		if gotRanges != nil {
			*gotRanges = r.URL.Query()["ranges"]
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSheetsSource(srv *httptest.Server, ranges ...string) *SheetsSource {
	return &SheetsSource{
		SpreadsheetID: "sheet-123",
		Ranges:        ranges,
		Options: []option.ClientOption{
			option.WithEndpoint(srv.URL + "/"),
			option.WithoutAuthentication(),
		},
	}
}

func TestSheetsSourceFetchTable(t *testing.T) {
	var ranges []string
	srv := sheetsServer(t, http.StatusOK, `{
		"spreadsheetId": "sheet-123",
		"valueRanges": [
			{"range": "Sheet1!A1:C2", "majorDimension": "ROWS", "values": [["name", "qty", "ok"], ["apple", 3, true]]},
			{"range": "Sheet2!A1:A1", "majorDimension": "ROWS", "values": [["tail"]]}
		]
	}`, &ranges)

	rows, err := testSheetsSource(srv, "Sheet1", "Sheet2").FetchTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Sheet1", "Sheet2"}, ranges)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "qty", "ok"}, []string(rows[0]))
	assert.Equal(t, []string{"apple", "3", "true"}, []string(rows[1]))
	assert.Equal(t, []string{"tail"}, []string(rows[2]))
}

func TestSheetsSourceDefaultRange(t *testing.T) {
	var ranges []string
	srv := sheetsServer(t, http.StatusOK, `{"spreadsheetId": "sheet-123", "valueRanges": []}`, &ranges)

	rows, err := testSheetsSource(srv).FetchTable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []string{"Sheet1"}, ranges)
}

func TestSheetsSourceErrorIsFetchError(t *testing.T) {
	srv := sheetsServer(t, http.StatusNotFound, `{"error": {"code": 404, "message": "Requested entity was not found."}}`, nil)

	rows, err := testSheetsSource(srv, "Sheet1").FetchTable(context.Background())
	require.Error(t, err)
	assert.Nil(t, rows)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "sheets:sheet-123", fe.Source)
	assert.Contains(t, fe.Message(), "Requested entity was not found")
}

func TestCellString(t *testing.T) {
	tests := map[string]struct {
		in   interface{}
		want string
	}{
		"nil":    {nil, ""},
		"string": {"hello", "hello"},
		"float":  {float64(2), "2"},
		"frac":   {1.5, "1.5"},
		"bool":   {true, "true"},
		"nested": {[]interface{}{"a", float64(1)}, `["a",1]`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, cellString(tc.in))
		})
	}
}
