// internal/domain/report/export.go
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// exportColumns is the fixed column set emitted to recipients, in the
// table's declaration order. The bookkeeping columns report_month,
// report_quarter, created_at and updated_at are never exported.
var exportColumns = []string{
	"id",
	"ucr",
	"company",
	"region",
	"development",
	"plot",
	"stage_5_achieved_date",
	"uprn",
	"postcode",
}

// Export is an in-memory tabular payload: ordered column names plus rows
// of already-rendered field values.
type Export struct {
	Columns []string
	Rows    [][]string
}

// Format converts a record set into an Export. An empty record set is
// valid and yields a header-only export. Null dates render as empty
// fields; dates render as ISO 8601 calendar dates.
func Format(records []*Record) *Export {
	export := &Export{
		Columns: exportColumns,
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		achieved := ""
		if r.Stage5AchievedDate.Valid {
			achieved = r.Stage5AchievedDate.Time.Format("2006-01-02")
		}
		export.Rows = append(export.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.UCR,
			r.Company,
			r.Region,
			r.Development,
			r.Plot,
			achieved,
			r.UPRN,
			r.Postcode,
		})
	}
	return export
}

// EncodeCSV renders the export as UTF-8 CSV with RFC 4180 quoting, so
// fields containing delimiters, quotes or line breaks round-trip through
// any conformant reader.
func (e *Export) EncodeCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(e.Columns); err != nil {
		return nil, fmt.Errorf("error writing export header: %w", err)
	}
	for i, row := range e.Rows {
		if len(row) != len(e.Columns) {
			return nil, fmt.Errorf("export row %d has %d fields, expected %d", i, len(row), len(e.Columns))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("error writing export row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error flushing export: %w", err)
	}
	return buf.Bytes(), nil
}
