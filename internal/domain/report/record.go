// internal/domain/report/record.go
package report

import (
	"database/sql"
	"time"
)

// Record represents one row of the 'stage_5_plots' table.
// The report_month and report_quarter columns are maintained upstream,
// always normalized to the first day of their period; the service only
// filters on them and never recomputes them.
type Record struct {
	ID                 int64
	UCR                string
	Company            string
	Region             string
	Development        string
	Plot               string
	Stage5AchievedDate sql.NullTime // Optional; not every plot has reached stage 5
	UPRN               string
	Postcode           string
	ReportMonth        time.Time
	ReportQuarter      time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
