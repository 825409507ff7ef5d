package datasource

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"sheetview/datatable"
)

// SheetsSource reads one or more ranges of a Google spreadsheet with a
// service account key.
type SheetsSource struct {
	CredentialsFile string
	SpreadsheetID   string
	// Ranges are A1 ranges or sheet names, read in order.
	Ranges []string
	// Options are appended to the client options, after the credentials.
	Options []option.ClientOption
	Logger  *zap.Logger
}

// Name implements Source.
func (s *SheetsSource) Name() string {
	return "sheets:" + s.SpreadsheetID
}

// FetchTable implements Source. The rows of all value ranges are concatenated
// in the order the API returns them.
func (s *SheetsSource) FetchTable(ctx context.Context) (datatable.Rows, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if s.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
	}
	opts = append(opts, s.Options...)

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, newFetchError(s.Name(), fmt.Errorf("failed to create sheets client: %w", err))
	}

	ranges := s.Ranges
	if len(ranges) == 0 {
		ranges = []string{"Sheet1"}
	}

	logger.Debug("fetching spreadsheet ranges",
		zap.String("spreadsheet", s.SpreadsheetID),
		zap.Strings("ranges", ranges))

	resp, err := svc.Spreadsheets.Values.BatchGet(s.SpreadsheetID).Ranges(ranges...).Context(ctx).Do()
	if err != nil {
		return nil, newFetchError(s.Name(), fmt.Errorf("failed to read ranges: %w", err))
	}

	rows := valueRangeRows(resp.ValueRanges)
	logger.Info("spreadsheet fetched",
		zap.String("spreadsheet", s.SpreadsheetID),
		zap.Int("ranges", len(resp.ValueRanges)),
		zap.Int("rows", len(rows)))
	return rows, nil
}

func valueRangeRows(ranges []*sheets.ValueRange) datatable.Rows {
	rows := datatable.Rows{}
	for _, vr := range ranges {
		if vr == nil {
			continue
		}
		for _, values := range vr.Values {
			row := make(datatable.Row, len(values))
			for i, v := range values {
				row[i] = cellString(v)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// cellString renders a decoded JSON cell value as display text.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool, float64, int, int64:
		return fmt.Sprint(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
