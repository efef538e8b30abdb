package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on output.
const DateLayout = "2006-01-02"

// RawColumns are the columns every input file must carry, in canonical order.
var RawColumns = []string{
	"order_id",
	"customer_name",
	"city",
	"product",
	"price",
	"quantity",
	"order_date",
}

// CleanColumns is the fixed output column order.
var CleanColumns = []string{
	"order_id",
	"customer_name",
	"city",
	"product",
	"price",
	"quantity",
	"order_date",
	"revenue",
	"quantity_was_missing",
}

// RawRecord represents one row of the raw sales file before any cleaning.
// A field is invalid (missing) when the cell was absent, empty or an NA token.
//
// QuantityWasMissing carries a flag already present in the input, which only
// happens when a previously cleaned file is fed back through the cleaner.
type RawRecord struct {
	OrderID            sql.Null[string]
	CustomerName       sql.Null[string]
	City               sql.Null[string]
	Product            sql.Null[string]
	Price              sql.Null[string]
	Quantity           sql.Null[string]
	OrderDate          sql.Null[string]
	QuantityWasMissing bool
}

// Cells returns the raw values in RawColumns order.
func (r RawRecord) Cells() []sql.Null[string] {
	return []sql.Null[string]{
		r.OrderID,
		r.CustomerName,
		r.City,
		r.Product,
		r.Price,
		r.Quantity,
		r.OrderDate,
	}
}

// SalesRecord is a row after text normalization and type coercion.
// Price, Quantity and OrderDate may still be missing at this stage.
type SalesRecord struct {
	OrderID            sql.Null[string]
	CustomerName       sql.Null[string]
	City               sql.Null[string]
	Product            sql.Null[string]
	Price              decimal.NullDecimal
	Quantity           decimal.NullDecimal
	OrderDate          sql.Null[time.Time]
	QuantityWasMissing bool
}

// CleanRecord is an analysis-ready row. Price, Quantity and OrderDate are
// always present; text fields may still be missing.
type CleanRecord struct {
	OrderID            sql.Null[string]
	CustomerName       sql.Null[string]
	City               sql.Null[string]
	Product            sql.Null[string]
	Price              decimal.Decimal
	Quantity           decimal.Decimal
	OrderDate          time.Time
	Revenue            decimal.Decimal
	QuantityWasMissing bool
}

// Cells renders the record in CleanColumns order. Missing text stays invalid.
func (r CleanRecord) Cells() []sql.Null[string] {
	return []sql.Null[string]{
		r.OrderID,
		r.CustomerName,
		r.City,
		r.Product,
		present(r.Price.String()),
		present(r.Quantity.String()),
		present(r.OrderDate.Format(DateLayout)),
		present(r.Revenue.String()),
		present(FormatBool(r.QuantityWasMissing)),
	}
}

// FormatBool renders a flag the way the cleaned CSV carries it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func present(s string) sql.Null[string] {
	return sql.Null[string]{V: s, Valid: true}
}
