// internal/infra/httpapi/server.go
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"stage5_report_service/internal/app"
	"stage5_report_service/internal/domain/report"

	"github.com/sirupsen/logrus"
)

const runTimeout = 10 * time.Minute

// Server exposes the on-demand trigger endpoint. It exists for testing a
// deployment and for re-running a period by hand; the regular cadence
// comes from the cron scheduler.
type Server struct {
	httpServer *http.Server
	runner     app.ReportRunner
	logger     *logrus.Logger
}

func NewServer(addr string, runner app.ReportRunner, logger *logrus.Logger) *Server {
	s := &Server{runner: runner, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/generate-reports", s.handleGenerateReports)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("HTTP trigger listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type generateRequest struct {
	Date string `json:"date"`
}

type kindSummary struct {
	Status     string `json:"status"`
	Records    int    `json:"records,omitempty"`
	Recipients int    `json:"recipients,omitempty"`
	Stage      string `json:"failed_stage,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

type runSummary struct {
	Success     bool                   `json:"success"`
	Date        string                 `json:"date"`
	RunID       string                 `json:"run_id"`
	ReportsSent int                    `json:"reports_sent"`
	Reports     map[string]kindSummary `json:"reports"`
}

func (s *Server) handleGenerateReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	today := time.Now()
	if r.ContentLength != 0 {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.Date != "" {
			parsed, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, use YYYY-MM-DD"})
				return
			}
			today = parsed
			s.logger.Infof("Generating reports on demand for date: %s", req.Date)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	outcome := s.runner.Run(ctx, today)
	status := http.StatusOK
	if outcome.Failed() {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, summarize(outcome))
}

func summarize(outcome *report.RunOutcome) runSummary {
	summary := runSummary{
		Success:     !outcome.Failed(),
		Date:        outcome.Date.Format("2006-01-02"),
		RunID:       outcome.RunID,
		ReportsSent: outcome.SentCount(),
		Reports:     make(map[string]kindSummary, len(outcome.Kinds)),
	}
	for kind, ko := range outcome.Kinds {
		summary.Reports[string(kind)] = kindSummary{
			Status:     string(ko.Status),
			Records:    ko.RowCount,
			Recipients: ko.Recipients,
			Stage:      string(ko.Stage),
			ErrorKind:  string(ko.ErrorKind),
			Error:      ko.Err,
		}
	}
	return summary
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
