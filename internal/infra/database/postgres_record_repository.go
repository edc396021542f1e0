// internal/infra/database/postgres_record_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stage5_report_service/internal/domain/report"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// recordColumns lists every column of stage_5_plots in declaration order.
// The bookkeeping columns are selected too; the export formatter is
// responsible for hiding them from recipients.
const recordColumns = `id, ucr, company, region, development, plot,
	stage_5_achieved_date, uprn, postcode,
	report_month, report_quarter, created_at, updated_at`

type PostgresRecordRepository struct {
	db *sql.DB
}

func NewPostgresRecordRepository(db *sql.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db}
}

// Ping verifies store connectivity at the start of a run.
func (r *PostgresRecordRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}
	return nil
}

func (r *PostgresRecordRepository) ListByReportMonth(ctx context.Context, month time.Time) ([]*report.Record, error) {
	query := `SELECT ` + recordColumns + `
               FROM public.stage_5_plots
               WHERE report_month = $1`
	rows, err := r.db.QueryContext(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("error querying records by report month: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *PostgresRecordRepository) ListByReportQuarterRange(ctx context.Context, start, end time.Time) ([]*report.Record, error) {
	query := `SELECT ` + recordColumns + `
               FROM public.stage_5_plots
               WHERE report_quarter >= $1 AND report_quarter <= $2`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying records by report quarter range: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *PostgresRecordRepository) ListByStageAchievedFrom(ctx context.Context, from time.Time) ([]*report.Record, error) {
	query := `SELECT ` + recordColumns + `
               FROM public.stage_5_plots
               WHERE stage_5_achieved_date >= $1`
	rows, err := r.db.QueryContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("error querying records by stage achieved date: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Helper to scan multiple rows
func scanRecords(rows *sql.Rows) ([]*report.Record, error) {
	records := make([]*report.Record, 0)
	for rows.Next() {
		rec := report.Record{}
		if err := rows.Scan(
			&rec.ID, &rec.UCR, &rec.Company, &rec.Region, &rec.Development, &rec.Plot,
			&rec.Stage5AchievedDate, &rec.UPRN, &rec.Postcode,
			&rec.ReportMonth, &rec.ReportQuarter, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}
