// internal/domain/report/plan.go
package report

import (
	"fmt"
	"time"
)

// Kind identifies the report being produced.
type Kind string

const (
	KindMonthly    Kind = "MONTHLY"    // Previous month, filtered on report_month
	KindQuarterly  Kind = "QUARTERLY"  // Previous quarter, filtered on report_quarter
	KindCumulative Kind = "CUMULATIVE" // Everything since the configured start date
)

// Kinds returns every report kind in processing order.
func Kinds() []Kind {
	return []Kind{KindMonthly, KindQuarterly, KindCumulative}
}

// FilterOp selects which of the three parameterized reads a plan maps to.
type FilterOp string

const (
	FilterEquals FilterOp = "EQUALS" // Exact match on report_month
	FilterRange  FilterOp = "RANGE"  // Inclusive bounds on report_quarter
	FilterFrom   FilterOp = "FROM"   // Inclusive lower bound on stage_5_achieved_date
)

// Filter is the tagged date filter carried by a Plan. Date is used by
// EQUALS and FROM; Start/End by RANGE.
type Filter struct {
	Op    FilterOp
	Date  time.Time
	Start time.Time
	End   time.Time
}

func EqualsFilter(d time.Time) Filter {
	return Filter{Op: FilterEquals, Date: d}
}

func RangeFilter(start, end time.Time) Filter {
	return Filter{Op: FilterRange, Start: start, End: end}
}

func FromFilter(d time.Time) Filter {
	return Filter{Op: FilterFrom, Date: d}
}

// Plan describes one due report for the current run. Plans are built
// fresh each invocation and never persisted.
type Plan struct {
	Kind     Kind
	Filter   Filter
	Label    string // Human-readable period description for the email body
	Filename string // Attachment name, stable per kind and period
}

// BuildPlans computes the reports due for a run dated 'today'. Monthly and
// Cumulative are always due. Quarterly is due only when the day before
// 'today' closed a calendar quarter: the schedule fires on the 1st of the
// month, so the run on Oct 1 carries the quarterly report for the quarter
// that ended on Sep 30.
//
// The result is a pure function of (today, cumulativeStart); repeated calls
// with the same inputs yield identical plans.
func BuildPlans(today, cumulativeStart time.Time) []Plan {
	today = DateOf(today)
	cumulativeStart = DateOf(cumulativeStart)

	previousMonth := FirstOfPreviousMonth(today)
	plans := []Plan{
		{
			Kind:     KindMonthly,
			Filter:   EqualsFilter(previousMonth),
			Label:    previousMonth.Format("January 2006"),
			Filename: fmt.Sprintf("monthly-report-%s.csv", previousMonth.Format("2006-01")),
		},
	}

	if IsQuarterEndDay(today.AddDate(0, 0, -1)) {
		start, end := PreviousQuarterRange(today)
		plans = append(plans, Plan{
			Kind:   KindQuarterly,
			Filter: RangeFilter(start, end),
			Label: fmt.Sprintf("Q%d %d (%s to %s)",
				QuarterOf(start), start.Year(),
				start.Format("2006-01-02"), end.Format("2006-01-02")),
			Filename: fmt.Sprintf("quarterly-report-%d-Q%d.csv", start.Year(), QuarterOf(start)),
		})
	}

	plans = append(plans, Plan{
		Kind:   KindCumulative,
		Filter: FromFilter(cumulativeStart),
		Label: fmt.Sprintf("since %s (as of %s)",
			cumulativeStart.Format("2006-01-02"), today.Format("2006-01-02")),
		Filename: fmt.Sprintf("cumulative-report-%s.csv", today.Format("2006-01-02")),
	})

	return plans
}
