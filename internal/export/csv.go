// Package export writes cleaned sales records to CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/salesclean/internal/domain/models"
)

// ctxCheckEvery is how many rows are written between cancellation checks.
const ctxCheckEvery = 1000

// WriteCSV writes records to path with a header row in models.CleanColumns order.
//
// Behavior:
//   - Creates the parent directory if needed.
//   - Writes to a temporary file in the same directory and renames it over
//     path only once every row has been flushed, so a failed run leaves any
//     previous output untouched and never a truncated file.
//   - Missing text fields are written as empty cells.
func WriteCSV(ctx context.Context, path string, records []models.CleanRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(models.CleanColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(models.CleanColumns))
	for i, r := range records {
		if i%ctxCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		for j, c := range r.Cells() {
			row[j] = c.V
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return nil
}
