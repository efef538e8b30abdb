// Package cleaning turns raw sales rows into analysis-ready rows.
//
// The pipeline is strictly linear:
//
//	Coerce -> ResolveMissing -> DropExactDuplicates -> DuplicateOrderIDs ->
//	DropMissingCritical -> DeriveRevenue
//
// Every stage returns a new slice and leaves its input untouched. Nothing in
// this package performs I/O except the diagnostic log helpers in diagnostics.go.
package cleaning

import (
	"database/sql"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/salesclean/internal/domain/models"
)

// Result is the outcome of Clean.
//
// Fields:
//   - Records: clean rows in original relative order.
//   - DuplicatesRemoved: exact duplicate rows dropped.
//   - DuplicateOrderIDs: order ids still repeated after deduplication.
//   - CriticalDropped: rows dropped for a missing price, quantity or order_date.
type Result struct {
	Records           []models.CleanRecord
	DuplicatesRemoved int
	DuplicateOrderIDs []models.OrderIDCount
	CriticalDropped   int
}

// Clean runs the full pipeline over raw. It never fails: unparseable cells
// become missing and unusable rows are counted, not reported as errors.
func Clean(raw []models.RawRecord) Result {
	resolved := ResolveMissing(Coerce(raw))
	deduped, removed := DropExactDuplicates(resolved)
	dupIDs := DuplicateOrderIDs(deduped)
	usable, dropped := DropMissingCritical(deduped)

	return Result{
		Records:           DeriveRevenue(usable),
		DuplicatesRemoved: removed,
		DuplicateOrderIDs: dupIDs,
		CriticalDropped:   dropped,
	}
}

// Coerce normalizes the text fields and parses price, quantity and order_date.
// order_id is only trimmed.
func Coerce(raw []models.RawRecord) []models.SalesRecord {
	out := make([]models.SalesRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, models.SalesRecord{
			OrderID:            trimID(r.OrderID),
			CustomerName:       NormalizeText(r.CustomerName),
			City:               NormalizeText(r.City),
			Product:            NormalizeText(r.Product),
			Price:              ParseNumber(r.Price),
			Quantity:           ParseNumber(r.Quantity),
			OrderDate:          ParseDate(r.OrderDate),
			QuantityWasMissing: r.QuantityWasMissing,
		})
	}
	return out
}

// ResolveMissing substitutes 1 for a missing quantity and raises
// QuantityWasMissing. Price and text fields are left as they are.
func ResolveMissing(records []models.SalesRecord) []models.SalesRecord {
	one := decimal.NewNullDecimal(decimal.NewFromInt(1))

	out := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		if !r.Quantity.Valid {
			r.Quantity = one
			r.QuantityWasMissing = true
		}
		out = append(out, r)
	}
	return out
}

// DropExactDuplicates keeps the first occurrence of every distinct record.
// Missing compares equal to missing in the same field.
// It returns the surviving records and how many were removed.
func DropExactDuplicates(records []models.SalesRecord) ([]models.SalesRecord, int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		k := rowKey(salesCells(r))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out, len(records) - len(out)
}

// DuplicateOrderIDs lists every order_id carried by more than one record,
// most frequent first, ties in order of first appearance. Missing ids are ignored.
func DuplicateOrderIDs(records []models.SalesRecord) []models.OrderIDCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if !r.OrderID.Valid {
			continue
		}
		if counts[r.OrderID.V] == 0 {
			order = append(order, r.OrderID.V)
		}
		counts[r.OrderID.V]++
	}

	var out []models.OrderIDCount
	for _, id := range order {
		if n := counts[id]; n > 1 {
			out = append(out, models.OrderIDCount{OrderID: id, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DropMissingCritical removes records without a price, quantity or order_date
// and returns the survivors together with the number removed.
func DropMissingCritical(records []models.SalesRecord) ([]models.SalesRecord, int) {
	out := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		if !r.Price.Valid || !r.Quantity.Valid || !r.OrderDate.Valid {
			continue
		}
		out = append(out, r)
	}
	return out, len(records) - len(out)
}

// DeriveRevenue computes revenue = price * quantity and emits the final rows.
// Callers must pass records that went through DropMissingCritical.
func DeriveRevenue(records []models.SalesRecord) []models.CleanRecord {
	out := make([]models.CleanRecord, 0, len(records))
	for _, r := range records {
		out = append(out, models.CleanRecord{
			OrderID:            r.OrderID,
			CustomerName:       r.CustomerName,
			City:               r.City,
			Product:            r.Product,
			Price:              r.Price.Decimal,
			Quantity:           r.Quantity.Decimal,
			OrderDate:          r.OrderDate.V,
			Revenue:            r.Price.Decimal.Mul(r.Quantity.Decimal),
			QuantityWasMissing: r.QuantityWasMissing,
		})
	}
	return out
}

func trimID(v sql.Null[string]) sql.Null[string] {
	if !v.Valid {
		return v
	}
	s := strings.TrimSpace(v.V)
	if s == "" {
		return sql.Null[string]{}
	}
	return sql.Null[string]{V: s, Valid: true}
}

// salesCells flattens a SalesRecord for comparison. Decimals compare by value,
// so "5.0" and "5.00" are the same price.
func salesCells(r models.SalesRecord) []sql.Null[string] {
	cells := []sql.Null[string]{r.OrderID, r.CustomerName, r.City, r.Product, {}, {}, {}, {}}
	if r.Price.Valid {
		cells[4] = sql.Null[string]{V: r.Price.Decimal.String(), Valid: true}
	}
	if r.Quantity.Valid {
		cells[5] = sql.Null[string]{V: r.Quantity.Decimal.String(), Valid: true}
	}
	if r.OrderDate.Valid {
		cells[6] = sql.Null[string]{V: r.OrderDate.V.Format(models.DateLayout), Valid: true}
	}
	cells[7] = sql.Null[string]{V: models.FormatBool(r.QuantityWasMissing), Valid: true}
	return cells
}

// rowKey encodes a row so that two rows share a key iff every cell matches,
// with missing distinct from any present value (including "").
func rowKey(cells []sql.Null[string]) string {
	var b strings.Builder
	for _, c := range cells {
		if !c.Valid {
			b.WriteString("-;")
			continue
		}
		b.WriteString(strconv.Itoa(len(c.V)))
		b.WriteByte(':')
		b.WriteString(c.V)
		b.WriteByte(';')
	}
	return b.String()
}
