package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stage5_report_service/internal/domain/report"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	lastDate time.Time
	outcome  *report.RunOutcome
}

func (f *fakeRunner) Run(_ context.Context, today time.Time) *report.RunOutcome {
	f.lastDate = today
	if f.outcome != nil {
		return f.outcome
	}
	out := report.NewRunOutcome("run-1", today)
	out.MarkSent(report.KindMonthly, 3, 2)
	out.MarkSent(report.KindCumulative, 10, 2)
	return out
}

func newTestServer(runner *fakeRunner) *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(":0", runner, log)
}

func TestGenerateReportsForExplicitDate(t *testing.T) {
	runner := &fakeRunner{}
	srv := newTestServer(runner)

	req := httptest.NewRequest(http.MethodPost, "/generate-reports", strings.NewReader(`{"date":"2025-10-01"}`))
	rec := httptest.NewRecorder()
	srv.handleGenerateReports(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), runner.lastDate)

	var summary runSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.True(t, summary.Success)
	assert.Equal(t, "2025-10-01", summary.Date)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.ReportsSent)
	assert.Equal(t, "SENT", summary.Reports["MONTHLY"].Status)
	assert.Equal(t, 3, summary.Reports["MONTHLY"].Records)
	assert.Equal(t, "SKIPPED", summary.Reports["QUARTERLY"].Status)
}

func TestGenerateReportsRejectsMalformedDate(t *testing.T) {
	runner := &fakeRunner{}
	srv := newTestServer(runner)

	req := httptest.NewRequest(http.MethodPost, "/generate-reports", strings.NewReader(`{"date":"01/10/2025"}`))
	rec := httptest.NewRecorder()
	srv.handleGenerateReports(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, runner.lastDate.IsZero())
}

func TestGenerateReportsRejectsWrongMethod(t *testing.T) {
	srv := newTestServer(&fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/generate-reports", nil)
	rec := httptest.NewRecorder()
	srv.handleGenerateReports(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGenerateReportsReportsFailureWith500(t *testing.T) {
	failed := report.NewRunOutcome("run-2", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	failed.MarkSent(report.KindCumulative, 4, 2)
	failed.MarkFailed(report.KindMonthly, report.StageDispatch, report.ErrorDeliveryFailed,
		context.DeadlineExceeded)
	runner := &fakeRunner{outcome: failed}
	srv := newTestServer(runner)

	req := httptest.NewRequest(http.MethodPost, "/generate-reports", strings.NewReader(`{"date":"2025-11-01"}`))
	rec := httptest.NewRecorder()
	srv.handleGenerateReports(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var summary runSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.False(t, summary.Success)
	assert.Equal(t, "FAILED", summary.Reports["MONTHLY"].Status)
	assert.Equal(t, "DISPATCH", summary.Reports["MONTHLY"].Stage)
	assert.Equal(t, "DELIVERY_FAILED", summary.Reports["MONTHLY"].ErrorKind)
	assert.Equal(t, "SENT", summary.Reports["CUMULATIVE"].Status)
}
