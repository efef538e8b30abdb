package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/guttosm/salesclean/internal/domain/models"
)

// SalesRepository defines contract for DB operations.
type SalesRepository interface {
	InsertCleanRecords(ctx context.Context, runID uuid.UUID, records []models.CleanRecord) error
	InsertRun(ctx context.Context, run models.Run) error
	LatestRun(ctx context.Context) (*models.Run, error)
	GetRevenueByProduct(ctx context.Context, product string, startDate *time.Time) (*models.RevenueAggregate, error)
}

type salesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) SalesRepository {
	return &salesRepository{db: db}
}

// InsertCleanRecords bulk-loads one run's clean records in a single transaction.
func (r *salesRepository) InsertCleanRecords(ctx context.Context, runID uuid.UUID, records []models.CleanRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"clean_sales",
		"run_id",
		"order_id",
		"customer_name",
		"city",
		"product",
		"price",
		"quantity",
		"order_date",
		"revenue",
		"quantity_was_missing",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			runID.String(),
			nullText(rec.OrderID),
			nullText(rec.CustomerName),
			nullText(rec.City),
			nullText(rec.Product),
			rec.Price.String(),
			rec.Quantity.String(),
			rec.OrderDate,
			rec.Revenue.String(),
			rec.QuantityWasMissing,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// InsertRun records the outcome of a cleaning run.
func (r *salesRepository) InsertRun(ctx context.Context, run models.Run) error {
	ids := run.DuplicateOrderIDs
	if ids == nil {
		ids = []models.OrderIDCount{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode duplicate order ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cleaning_runs (id, source_file, raw_rows, clean_rows, duplicates_removed, critical_dropped, duplicate_order_ids, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID.String(), run.SourceFile, run.RawRows, run.CleanRows, run.DuplicatesRemoved, run.CriticalDropped, string(payload), run.StartedAt, run.FinishedAt)
	return err
}

// LatestRun returns the most recently finished run, or nil when none exists.
func (r *salesRepository) LatestRun(ctx context.Context) (*models.Run, error) {
	var (
		run     models.Run
		id      string
		payload []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, source_file, raw_rows, clean_rows, duplicates_removed, critical_dropped, duplicate_order_ids, started_at, finished_at
		FROM cleaning_runs
		ORDER BY finished_at DESC
		LIMIT 1
	`).Scan(&id, &run.SourceFile, &run.RawRows, &run.CleanRows, &run.DuplicatesRemoved, &run.CriticalDropped, &payload, &run.StartedAt, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse run id: %w", err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &run.DuplicateOrderIDs); err != nil {
			return nil, fmt.Errorf("decode duplicate order ids: %w", err)
		}
	}
	return &run, nil
}

// GetRevenueByProduct sums revenue and quantity of one product in the latest run,
// optionally from startDate on. It returns nil when the product has no lines.
func (r *salesRepository) GetRevenueByProduct(ctx context.Context, product string, startDate *time.Time) (*models.RevenueAggregate, error) {
	// $1 is always product; the start date, when given, is $2.
	conditions := "product = $1"
	args := []interface{}{product}
	if startDate != nil {
		conditions += fmt.Sprintf(" AND order_date >= $%d", len(args)+1)
		args = append(args, *startDate)
	}

	query := fmt.Sprintf(`
		WITH latest AS (
			SELECT id FROM cleaning_runs ORDER BY finished_at DESC LIMIT 1
		)
		SELECT SUM(revenue) AS total_revenue, SUM(quantity) AS total_quantity, COUNT(*) AS lines
		FROM clean_sales
		WHERE run_id = (SELECT id FROM latest) AND %s
	`, conditions)

	var (
		revenue  decimal.NullDecimal
		quantity decimal.NullDecimal
		lines    int64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&revenue, &quantity, &lines); err != nil {
		return nil, err
	}
	if lines == 0 {
		return nil, nil
	}

	return &models.RevenueAggregate{
		Product:       product,
		TotalRevenue:  revenue.Decimal,
		TotalQuantity: quantity.Decimal,
		Lines:         lines,
	}, nil
}

// nullText maps a missing text field to SQL NULL.
func nullText(v sql.Null[string]) interface{} {
	if !v.Valid {
		return nil
	}
	return v.V
}
