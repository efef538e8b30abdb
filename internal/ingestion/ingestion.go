package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/salesclean/internal/cleaning"
	"github.com/guttosm/salesclean/internal/domain/models"
	"github.com/guttosm/salesclean/internal/export"
	"github.com/guttosm/salesclean/internal/logger"
	"github.com/guttosm/salesclean/internal/storage"
)

// ErrSameAsInput is returned when the output path resolves to the input file.
var ErrSameAsInput = errors.New("output path is the input file")

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.SalesRepository {
	return storage.NewSalesRepository(db)
}

// Options locates one cleaning run.
//
//   - InputPath: raw sales CSV.
//   - OutputPath: destination of the cleaned CSV; parent directories are created.
//   - PreviewRows: rows shown in the raw and clean snapshots.
type Options struct {
	InputPath   string
	OutputPath  string
	PreviewRows int
}

// ProcessFile runs one end-to-end cleaning pass.
//
// Behavior:
//   - Fails before reading anything when the input is absent or equals the output.
//   - Logs a snapshot and summary of the raw data, cleans it, writes the
//     cleaned CSV atomically and logs the same diagnostics for the result.
//   - When db is non-nil, the clean rows and the run record are persisted
//     after the CSV has been written.
//
// Returns:
//   - *models.Run: counts and timings of the run.
//   - error: first error encountered (if any).
func ProcessFile(ctx context.Context, opts Options, db *sql.DB) (*models.Run, error) {
	start := time.Now().UTC()

	if _, err := os.Stat(opts.InputPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputPath)
		}
		return nil, fmt.Errorf("stat failed for %s: %w", opts.InputPath, err)
	}
	if same, err := samePath(opts.InputPath, opts.OutputPath); err != nil {
		return nil, err
	} else if same {
		return nil, fmt.Errorf("%w: %s", ErrSameAsInput, opts.OutputPath)
	}
	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	logger.L().Info().Str("input", opts.InputPath).Str("output", opts.OutputPath).Msg("cleaning start")

	raw, err := LoadFile(ctx, opts.InputPath)
	if err != nil {
		logger.L().Error().Str("file", opts.InputPath).Err(err).Msg("load failed")
		return nil, err
	}
	rawRows := cleaning.RawRows(raw)
	cleaning.LogPreview("raw", models.RawColumns, rawRows, opts.PreviewRows)
	cleaning.LogSummary("raw", cleaning.Summarize(models.RawColumns, rawRows))

	result := cleaning.Clean(raw)
	cleaning.LogCleanResult(result)

	if err := export.WriteCSV(ctx, opts.OutputPath, result.Records); err != nil {
		logger.L().Error().Str("file", opts.OutputPath).Err(err).Msg("write failed")
		return nil, err
	}
	cleanRows := cleaning.CleanRows(result.Records)
	cleaning.LogPreview("clean", models.CleanColumns, cleanRows, opts.PreviewRows)
	cleaning.LogSummary("clean", cleaning.Summarize(models.CleanColumns, cleanRows))

	run := &models.Run{
		ID:                uuid.New(),
		SourceFile:        opts.InputPath,
		RawRows:           len(raw),
		CleanRows:         len(result.Records),
		DuplicatesRemoved: result.DuplicatesRemoved,
		CriticalDropped:   result.CriticalDropped,
		DuplicateOrderIDs: result.DuplicateOrderIDs,
		StartedAt:         start,
		FinishedAt:        time.Now().UTC(),
	}

	if db != nil {
		// use indirection to allow tests to swap repository constructor
		repo := repoCtor(db)
		if err := repo.InsertCleanRecords(ctx, run.ID, result.Records); err != nil {
			logger.L().Error().Str("run_id", run.ID.String()).Err(err).Msg("persist clean rows failed")
			return nil, fmt.Errorf("persist clean rows: %w", err)
		}
		if err := repo.InsertRun(ctx, *run); err != nil {
			logger.L().Error().Str("run_id", run.ID.String()).Err(err).Msg("persist run failed")
			return nil, fmt.Errorf("persist run: %w", err)
		}
	}

	logger.L().Info().
		Str("run_id", run.ID.String()).
		Str("saved", opts.OutputPath).
		Int("rows", run.CleanRows).
		Dur("elapsed", run.FinishedAt.Sub(start)).
		Bool("persisted", db != nil).
		Msg("cleaning done")
	return run, nil
}

// samePath reports whether a and b name the same file, following an existing
// output path so links to the input are caught too.
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}
	infoB, err := os.Stat(absB)
	if err != nil {
		return false, nil
	}
	infoA, err := os.Stat(absA)
	if err != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}
