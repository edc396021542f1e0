package scheduler

import (
	"context"
	"time"

	"stage5_report_service/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds a whole scheduled invocation: two external calls per
// report kind at most, so ten minutes is generous.
const runTimeout = 10 * time.Minute

// ReportScheduler fires the report run on the configured cron spec. The
// cron engine runs jobs sequentially per entry, which gives the
// single-flight guarantee the run logic assumes.
type ReportScheduler struct {
	cronEngine      *cron.Cron
	runner          app.ReportRunner
	logger          *logrus.Logger
	cronSpecMonthly string
}

func NewReportScheduler(runner app.ReportRunner, logger *logrus.Logger, cronSpecMonthly string) *ReportScheduler {
	return &ReportScheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		runner:          runner,
		logger:          logger,
		cronSpecMonthly: cronSpecMonthly,
	}
}

func (s *ReportScheduler) Start() {
	s.logger.Info("Starting report scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecMonthly, func() {
		s.logger.Info("Cron job triggered for scheduled report run.")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		// Capture "today" once so the whole run agrees on the date even
		// if execution crosses midnight.
		outcome := s.runner.Run(ctx, time.Now())
		entry := s.logger.WithFields(logrus.Fields{
			"run_id": outcome.RunID,
			"date":   outcome.Date.Format("2006-01-02"),
			"sent":   outcome.SentCount(),
		})
		if outcome.Failed() {
			entry.Error("Scheduled report run finished with failures")
		} else {
			entry.Info("Scheduled report run finished successfully")
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add monthly report cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Report scheduler started with spec %q.", s.cronSpecMonthly)
}

func (s *ReportScheduler) Stop() {
	s.logger.Info("Stopping report scheduler...")
	ctx := s.cronEngine.Stop() // Stops new jobs, waits for running ones.
	<-ctx.Done()
	s.logger.Info("Report scheduler gracefully stopped.")
}
