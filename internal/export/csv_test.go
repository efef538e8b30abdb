package export

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/salesclean/internal/domain/models"
)

func record(id, name string, price, qty string, flag bool) models.CleanRecord {
	p := decimal.RequireFromString(price)
	q := decimal.RequireFromString(qty)
	r := models.CleanRecord{
		Price:              p,
		Quantity:           q,
		OrderDate:          time.Date(2023, 6, 3, 0, 0, 0, 0, time.UTC),
		Revenue:            p.Mul(q),
		QuantityWasMissing: flag,
	}
	if id != "" {
		r.OrderID = sql.Null[string]{V: id, Valid: true}
	}
	if name != "" {
		r.CustomerName = sql.Null[string]{V: name, Valid: true}
	}
	return r
}

func TestWriteCSV(t *testing.T) {
	cases := []struct {
		name    string
		records []models.CleanRecord
		want    []string
	}{
		{
			name:    "header only",
			records: nil,
			want:    []string{"order_id,customer_name,city,product,price,quantity,order_date,revenue,quantity_was_missing"},
		},
		{
			name: "rows",
			records: []models.CleanRecord{
				record("1", "John Smith", "9.99", "2", false),
				record("2", "", "5.00", "1", true),
				record("", "Smith, Jr", "0.1", "3", false),
			},
			want: []string{
				"order_id,customer_name,city,product,price,quantity,order_date,revenue,quantity_was_missing",
				"1,John Smith,,,9.99,2,2023-06-03,19.98,False",
				"2,,,,5,1,2023-06-03,5,True",
				`,"Smith, Jr",,,0.1,3,2023-06-03,0.3,False`,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "clean.csv")
			if err := WriteCSV(context.Background(), path, tc.records); err != nil {
				t.Fatalf("WriteCSV: %v", err)
			}
			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			got := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
			if len(got) != len(tc.want) {
				t.Fatalf("want %d lines, got %d:\n%s", len(tc.want), len(got), b)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("line %d: want %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestWriteCSV_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.csv")
	if err := os.WriteFile(path, []byte("stale\n"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := WriteCSV(context.Background(), path, []models.CleanRecord{record("1", "A", "1", "1", false)}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "stale") {
		t.Fatalf("old content survived: %s", b)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteCSV_CanceledKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.csv")
	if err := os.WriteFile(path, []byte("previous\n"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WriteCSV(ctx, path, []models.CleanRecord{record("1", "A", "1", "1", false)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	b, _ := os.ReadFile(path)
	if string(b) != "previous\n" {
		t.Fatalf("previous output modified: %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteCSV_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := WriteCSV(context.Background(), filepath.Join(blocker, "clean.csv"), nil); err == nil {
		t.Fatalf("expected error when parent is a file")
	}
}
