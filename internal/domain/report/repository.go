// internal/domain/report/repository.go
package report

import (
	"context"
	"time"
)

// Repository defines the read operations against the stage_5_plots store.
// Each method corresponds to one filter shape; rows come back in the
// store's natural order with no further ordering guarantee.
type Repository interface {
	// Ping verifies the store is reachable before a run starts.
	Ping(ctx context.Context) error
	// ListByReportMonth returns records whose report_month equals the given date.
	ListByReportMonth(ctx context.Context, month time.Time) ([]*Record, error)
	// ListByReportQuarterRange returns records whose report_quarter lies
	// within [start, end], bounds inclusive.
	ListByReportQuarterRange(ctx context.Context, start, end time.Time) ([]*Record, error)
	// ListByStageAchievedFrom returns records whose stage_5_achieved_date is
	// on or after the given date, with no upper bound.
	ListByStageAchievedFrom(ctx context.Context, from time.Time) ([]*Record, error)
}
