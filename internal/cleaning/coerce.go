package cleaning

import (
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TwoDigitYearPivot bounds how far in the future a two-digit year may land
// before it is moved back one century.
var TwoDigitYearPivot = 20

// maxNumberMagnitude bounds the decimal exponent of a parsed number to the
// float64 range. Larger magnitudes would expand into millions of digits on
// String and Mul.
const maxNumberMagnitude = 308

// Date layouts grouped by how they resolve day and month.
// Year-first layouts are unambiguous. Day-first layouts win whenever they
// produce a valid date; month-first layouts only catch values such as
// "12-25-2023" that are impossible as day-first.
var (
	yearFirstLayouts = []string{
		"2006-1-2", "2006/1/2", "2006.1.2",
		"20060102",
	}
	dayFirstLayouts = []string{
		"2-1-2006", "2/1/2006", "2.1.2006",
		"2 Jan 2006", "2 January 2006", "2-Jan-2006", "2 Jan, 2006", "2 January, 2006",
		"Jan 2, 2006", "January 2, 2006", "Jan 2 2006", "January 2 2006",
	}
	dayFirstShortYearLayouts = []string{
		"2-1-06", "2/1/06", "2.1.06",
		"2-Jan-06",
	}
	monthFirstLayouts = []string{
		"1-2-2006", "1/2/2006", "1.2.2006",
	}
	monthFirstShortYearLayouts = []string{
		"1-2-06", "1/2/06", "1.2.06",
	}
)

// ParseNumber coerces a raw price or quantity cell to a decimal.
// Values plain decimal syntax rejects (text, currency symbols, thousands
// separators, NaN/Inf) are reported as missing, and so are values whose
// magnitude lies outside 1e-308..1e308.
func ParseNumber(v sql.Null[string]) decimal.NullDecimal {
	if !v.Valid {
		return decimal.NullDecimal{}
	}
	s := strings.TrimSpace(v.V)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	if d.IsZero() {
		return decimal.NewNullDecimal(decimal.Zero)
	}
	if mag := int(d.Exponent()) + d.NumDigits() - 1; mag > maxNumberMagnitude || mag < -maxNumberMagnitude {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseDate coerces a raw order_date cell to a calendar date at UTC midnight,
// preferring day-before-month for ambiguous values ("03-06-2023" is 3 June).
// A trailing clock part ("2023-06-03 10:15", "2023-06-03T10:15:00Z") is ignored.
func ParseDate(v sql.Null[string]) sql.Null[time.Time] {
	if !v.Valid {
		return sql.Null[time.Time]{}
	}
	s := stripClock(strings.Join(strings.Fields(v.V), " "))
	if s == "" {
		return sql.Null[time.Time]{}
	}

	for _, group := range [][]string{yearFirstLayouts, dayFirstLayouts, monthFirstLayouts} {
		if t, ok := tryLayouts(group, s); ok {
			return sql.Null[time.Time]{V: t, Valid: true}
		}
	}
	for _, group := range [][]string{dayFirstShortYearLayouts, monthFirstShortYearLayouts} {
		if t, ok := tryLayouts(group, s); ok {
			return sql.Null[time.Time]{V: pivotYear(t), Valid: true}
		}
	}
	return sql.Null[time.Time]{}
}

func tryLayouts(layouts []string, s string) (time.Time, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// pivotYear moves a parsed two-digit year back a century when it lands more
// than TwoDigitYearPivot years in the future.
func pivotYear(t time.Time) time.Time {
	if t.Year() > time.Now().Year()+TwoDigitYearPivot {
		return t.AddDate(-100, 0, 0)
	}
	return t
}

// stripClock drops a time-of-day suffix separated from the date by a space or 'T'.
func stripClock(s string) string {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return s
	}
	cut := strings.LastIndexAny(s[:colon], " T")
	if cut <= 0 {
		return s
	}
	return strings.TrimSpace(s[:cut])
}
