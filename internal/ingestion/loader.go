package ingestion

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/salesclean/internal/domain/models"
)

// flagColumn is read when present so a cleaned file can be fed back in.
const flagColumn = "quantity_was_missing"

var (
	// ErrInputNotFound is returned when the raw sales file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)

// naTokens are the cell values read as missing, on top of the empty string.
// Matching is exact and case-sensitive.
var naTokens = map[string]struct{}{
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"NaN":      {},
	"nan":      {},
	"-NaN":     {},
	"-nan":     {},
	"NULL":     {},
	"null":     {},
	"None":     {},
	"<NA>":     {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"1.#IND":   {},
	"1.#QNAN":  {},
}

// ResolvePath anchors a relative path at root; absolute paths are only cleaned.
func ResolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// LoadFile reads the raw sales CSV at path.
//
// It fails on:
//   - a missing file (ErrInputNotFound)
//   - a header without one of models.RawColumns (ErrMissingColumn)
//   - malformed CSV or other I/O errors
//
// It tolerates:
//   - columns in any order and extra columns
//   - short rows (absent cells are missing)
//   - NA tokens and empty cells (missing)
func LoadFile(ctx context.Context, path string) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readRecords(ctx, f)
}

func readRecords(ctx context.Context, src io.Reader) ([]models.RawRecord, error) {
	r := csv.NewReader(src)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // short and long rows are handled per cell

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []models.RawRecord
	lineNumber := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		out = append(out, toRawRecord(rec, idx))
	}

	return out, nil
}

// columnIndex maps every known column name to its position in header.
// The flag column is optional and maps to -1 when absent.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range models.RawColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	if _, ok := idx[flagColumn]; !ok {
		idx[flagColumn] = -1
	}
	return idx, nil
}

// toRawRecord picks the known columns out of one CSV row.
func toRawRecord(rec []string, idx map[string]int) models.RawRecord {
	r := models.RawRecord{
		OrderID:      cell(rec, idx["order_id"]),
		CustomerName: cell(rec, idx["customer_name"]),
		City:         cell(rec, idx["city"]),
		Product:      cell(rec, idx["product"]),
		Price:        cell(rec, idx["price"]),
		Quantity:     cell(rec, idx["quantity"]),
		OrderDate:    cell(rec, idx["order_date"]),
	}
	if flag := cell(rec, idx[flagColumn]); flag.Valid {
		switch strings.ToLower(strings.TrimSpace(flag.V)) {
		case "true", "1":
			r.QuantityWasMissing = true
		}
	}
	return r
}

func cell(rec []string, i int) sql.Null[string] {
	if i < 0 || i >= len(rec) {
		return sql.Null[string]{}
	}
	v := rec[i]
	if v == "" {
		return sql.Null[string]{}
	}
	if _, na := naTokens[v]; na {
		return sql.Null[string]{}
	}
	return sql.Null[string]{V: v, Valid: true}
}
