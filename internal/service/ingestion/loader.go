package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

// Loader applies an extracted record sequence to the time-entry store with
// insert-or-update semantics on the natural key.
type Loader struct {
	repo timesheet.EntryRepository
}

func NewLoader(repo timesheet.EntryRepository) *Loader {
	return &Loader{repo: repo}
}

// Load persists records in file order. Rows whose status is not Submitted
// are never persisted. For incremental loads only rows strictly after the
// store watermark are admitted; the input is assumed date-sorted, so an
// unsorted incremental file can under- or over-admit rows around the
// watermark (a documented sharp edge of the export format, not corrected
// here). Per-row failures are counted and the batch continues.
func (l *Loader) Load(ctx context.Context, records []timesheet.Record, incremental bool) (timesheet.LoadStats, error) {
	stats := timesheet.LoadStats{BatchID: uuid.NewString()}

	watermark, err := l.repo.MaxWorkDate(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to read watermark: %w", err)
	}

	for _, rec := range records {
		if rec.SubmissionStatus != timesheet.StatusSubmitted {
			continue
		}
		if rec.WorkDate.IsZero() {
			stats.Errors++
			continue
		}
		if incremental && watermark != nil && !rec.WorkDate.After(*watermark) {
			continue
		}

		created, err := l.repo.Upsert(ctx, rec)
		if err != nil {
			stats.Errors++
			slog.Error("failed to load time entry",
				"batch", stats.BatchID,
				"work_date", rec.WorkDate.Format("2006-01-02"),
				"employee", rec.EmployeeName,
				"error", err,
			)
			continue
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	total, err := l.repo.Count(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to count time entries: %w", err)
	}
	stats.TotalInStore = total

	slog.Info("load complete",
		"batch", stats.BatchID,
		"created", stats.Created,
		"updated", stats.Updated,
		"errors", stats.Errors,
		"total_in_store", stats.TotalInStore,
	)

	return stats, nil
}
