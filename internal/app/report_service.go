// internal/app/report_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"stage5_report_service/internal/domain/report"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReportRunner is the orchestration entry point used by the scheduler and
// the on-demand HTTP trigger.
type ReportRunner interface {
	// Run produces and dispatches every report due for the given date and
	// returns the per-kind outcome. Failures are recorded in the outcome
	// rather than raised; Run itself never returns an error.
	Run(ctx context.Context, today time.Time) *report.RunOutcome
}

// ReportService implements the ReportRunner interface: it builds the plan
// for the run date, extracts and formats each due report and hands it to
// the dispatcher, isolating failures per report kind.
type ReportService struct {
	records         report.Repository
	dispatcher      *Dispatcher
	cumulativeStart time.Time
	logger          *logrus.Logger
}

func NewReportService(
	records report.Repository,
	dispatcher *Dispatcher,
	cumulativeStart time.Time,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		records:         records,
		dispatcher:      dispatcher,
		cumulativeStart: cumulativeStart,
		logger:          logger,
	}
}

// Run executes one report generation invocation. The date is captured once
// by the caller so every calendar computation in the run agrees on "today".
func (s *ReportService) Run(ctx context.Context, today time.Time) *report.RunOutcome {
	runID := uuid.NewString()
	outcome := report.NewRunOutcome(runID, today)
	log := s.logger.WithFields(logrus.Fields{"run_id": runID, "date": outcome.Date.Format("2006-01-02")})

	plans := report.BuildPlans(today, s.cumulativeStart)
	log.Infof("Report run started, %d report(s) due", len(plans))

	// An unreachable store fails the whole run up front; retrying each
	// kind against it individually is pointless.
	if err := s.records.Ping(ctx); err != nil {
		log.WithError(err).Error("Store unavailable, failing all due reports")
		for _, plan := range plans {
			outcome.MarkFailed(plan.Kind, report.StageExtract, report.ErrorStoreUnavailable,
				fmt.Errorf("store unavailable: %w", err))
		}
		return outcome
	}

	for _, plan := range plans {
		s.runOne(ctx, plan, outcome, log)
	}

	log.WithFields(logrus.Fields{"sent": outcome.SentCount(), "failed": outcome.Failed()}).
		Info("Report run finished")
	return outcome
}

// runOne processes a single plan. Any failure is recorded on the outcome
// and does not affect the remaining plans.
func (s *ReportService) runOne(ctx context.Context, plan report.Plan, outcome *report.RunOutcome, log *logrus.Entry) {
	records, err := s.extract(ctx, plan.Filter)
	if err != nil {
		log.WithError(err).Errorf("Extraction failed for %s report", plan.Kind)
		outcome.MarkFailed(plan.Kind, report.StageExtract, report.ErrorQueryFailed, err)
		return
	}

	csvData, err := report.Format(records).EncodeCSV()
	if err != nil {
		log.WithError(err).Errorf("Formatting failed for %s report", plan.Kind)
		outcome.MarkFailed(plan.Kind, report.StageFormat, report.ErrorFormatFailed, err)
		return
	}

	recipients, err := s.dispatcher.Dispatch(ctx, plan, csvData, len(records))
	if err != nil {
		log.WithError(err).Errorf("Delivery failed for %s report", plan.Kind)
		outcome.MarkFailed(plan.Kind, report.StageDispatch, report.ErrorDeliveryFailed, err)
		return
	}

	outcome.MarkSent(plan.Kind, len(records), recipients)
}

func (s *ReportService) extract(ctx context.Context, filter report.Filter) ([]*report.Record, error) {
	switch filter.Op {
	case report.FilterEquals:
		return s.records.ListByReportMonth(ctx, filter.Date)
	case report.FilterRange:
		return s.records.ListByReportQuarterRange(ctx, filter.Start, filter.End)
	case report.FilterFrom:
		return s.records.ListByStageAchievedFrom(ctx, filter.Date)
	default:
		return nil, fmt.Errorf("unknown filter op: %s", filter.Op)
	}
}
