// internal/app/dispatcher.go
package app

import (
	"context"
	"fmt"
	"strings"

	"stage5_report_service/internal/domain/email"
	"stage5_report_service/internal/domain/report"

	"github.com/sirupsen/logrus"
)

// Dispatcher packages one export as an email attachment and submits it to
// the transport. One message per report kind, full recipient set, single
// best-effort attempt with no retry.
type Dispatcher struct {
	client     email.Client
	recipients []string
	logger     *logrus.Logger
}

func NewDispatcher(client email.Client, recipients []string, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		client:     client,
		recipients: recipients,
		logger:     logger,
	}
}

// Dispatch sends the CSV export for one plan. It returns the number of
// recipients the message was addressed to.
func (d *Dispatcher) Dispatch(ctx context.Context, plan report.Plan, csvData []byte, rowCount int) (int, error) {
	msg := email.Message{
		To:       d.recipients,
		Subject:  subjectFor(plan),
		HTMLBody: bodyFor(plan, rowCount),
		Attachments: []email.Attachment{{
			Filename:    plan.Filename,
			ContentType: "text/csv",
			Data:        csvData,
		}},
	}

	if err := d.client.Send(ctx, msg); err != nil {
		return 0, fmt.Errorf("failed to send %s report email: %w", plan.Kind, err)
	}
	d.logger.WithFields(logrus.Fields{
		"kind":       plan.Kind,
		"filename":   plan.Filename,
		"recipients": len(d.recipients),
		"records":    rowCount,
	}).Info("Report email sent")
	return len(d.recipients), nil
}

func subjectFor(plan report.Plan) string {
	return fmt.Sprintf("Stage 5 Completion Report - %s - %s", kindTitle(plan.Kind), plan.Label)
}

func bodyFor(plan report.Plan, rowCount int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Stage 5 Completion Report - %s</h2>", kindTitle(plan.Kind)))
	b.WriteString("<p>Please find the attached report:</p><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>%s Report - %s</strong>: %d records</li>",
		kindTitle(plan.Kind), plan.Label, rowCount))
	b.WriteString("</ul>")
	return b.String()
}

func kindTitle(kind report.Kind) string {
	switch kind {
	case report.KindMonthly:
		return "Monthly"
	case report.KindQuarterly:
		return "Quarterly"
	case report.KindCumulative:
		return "Cumulative"
	default:
		return string(kind)
	}
}
