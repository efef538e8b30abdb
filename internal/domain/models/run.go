package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the diagnostic snapshot of a dataset.
//
// Fields:
//   - Rows: number of rows.
//   - DuplicateRows: rows identical to an earlier row across every column.
//   - Missing: per-column missing counts, in the order of Columns.
type Summary struct {
	Columns       []string
	Rows          int
	DuplicateRows int
	Missing       []int
}

// OrderIDCount reports an order_id that appears on more than one row.
type OrderIDCount struct {
	OrderID string `json:"order_id" example:"5"`
	Count   int    `json:"count" example:"2"`
}

// Run describes one execution of the cleaner, as recorded in cleaning_runs.
//
// swagger:model Run
type Run struct {
	ID                uuid.UUID      `json:"id"`
	SourceFile        string         `json:"source_file" example:"raw_sales_data.csv"`
	RawRows           int            `json:"raw_rows" example:"120"`
	CleanRows         int            `json:"clean_rows" example:"104"`
	DuplicatesRemoved int            `json:"duplicates_removed" example:"9"`
	CriticalDropped   int            `json:"critical_dropped" example:"7"`
	DuplicateOrderIDs []OrderIDCount `json:"duplicate_order_ids"`
	StartedAt         time.Time      `json:"started_at"`
	FinishedAt        time.Time      `json:"finished_at"`
}

// RevenueAggregate is the revenue rolled up for one product.
type RevenueAggregate struct {
	Product       string
	TotalRevenue  decimal.Decimal
	TotalQuantity decimal.Decimal
	Lines         int64
}
