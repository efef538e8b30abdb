package cleaning

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/guttosm/salesclean/internal/domain/models"
	"github.com/guttosm/salesclean/internal/logger"
)

// maxReportedOrderIDs caps how many repeated order ids are logged.
const maxReportedOrderIDs = 10

// Summarize counts rows, exact duplicate rows and per-column missing values.
// rows must be laid out in the order of columns.
func Summarize(columns []string, rows [][]sql.Null[string]) models.Summary {
	s := models.Summary{
		Columns: columns,
		Rows:    len(rows),
		Missing: make([]int, len(columns)),
	}

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		for i, c := range row {
			if i < len(s.Missing) && !c.Valid {
				s.Missing[i]++
			}
		}
		k := rowKey(row)
		if _, dup := seen[k]; dup {
			s.DuplicateRows++
			continue
		}
		seen[k] = struct{}{}
	}
	return s
}

// RawRows lays raw records out in models.RawColumns order.
func RawRows(records []models.RawRecord) [][]sql.Null[string] {
	rows := make([][]sql.Null[string], 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Cells())
	}
	return rows
}

// CleanRows lays clean records out in models.CleanColumns order.
func CleanRows(records []models.CleanRecord) [][]sql.Null[string] {
	rows := make([][]sql.Null[string], 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Cells())
	}
	return rows
}

// LogSummary writes a Summary under the given stage label ("raw", "clean").
func LogSummary(stage string, s models.Summary) {
	missing := zerolog.Dict()
	for i, col := range s.Columns {
		missing.Int(col, s.Missing[i])
	}
	logger.L().Info().
		Str("stage", stage).
		Int("rows", s.Rows).
		Int("duplicate_rows", s.DuplicateRows).
		Dict("missing", missing).
		Msg("dataset summary")
}

// LogPreview writes the first n rows, one log line per row.
func LogPreview(stage string, columns []string, rows [][]sql.Null[string], n int) {
	if n > len(rows) {
		n = len(rows)
	}
	for i := 0; i < n; i++ {
		ev := logger.L().Info().Str("stage", stage).Int("row", i)
		for j, col := range columns {
			if j >= len(rows[i]) || !rows[i][j].Valid {
				ev = ev.Str(col, "NaN")
				continue
			}
			ev = ev.Str(col, rows[i][j].V)
		}
		ev.Msg("snapshot")
	}
}

// LogCleanResult reports the informational parts of a Result: repeated
// order ids (possible multi-line orders) and rows dropped for missing fields.
func LogCleanResult(r Result) {
	if r.DuplicatesRemoved > 0 {
		logger.L().Info().Int("rows", r.DuplicatesRemoved).Msg("removed exact duplicate rows")
	}
	if len(r.DuplicateOrderIDs) > 0 {
		top := r.DuplicateOrderIDs
		if len(top) > maxReportedOrderIDs {
			top = top[:maxReportedOrderIDs]
		}
		arr := zerolog.Arr()
		for _, d := range top {
			arr.Dict(zerolog.Dict().Str("order_id", d.OrderID).Int("count", d.Count))
		}
		logger.L().Info().
			Int("groups", len(r.DuplicateOrderIDs)).
			Array("order_ids", arr).
			Msg("some order_id values appear multiple times (could be multi-line orders)")
	}
	if r.CriticalDropped > 0 {
		logger.L().Info().Int("rows", r.CriticalDropped).Msg("dropped rows due to missing price/quantity/order_date")
	}
}
