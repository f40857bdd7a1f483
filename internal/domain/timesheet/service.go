package timesheet

import (
	"context"
	"time"
)

// IngestionService runs the full pipeline: encoding normalization,
// extraction and deduplicating load.
type IngestionService interface {
	// Ingest processes one uploaded export. Row-scoped failures are counted
	// in the returned stats; only file-scoped failures (bad schema,
	// unsupported extension) return an error.
	Ingest(ctx context.Context, req UploadRequest) (UploadResponse, error)

	// ListEntries returns stored entries in [start, end], newest first,
	// capped at limit.
	ListEntries(ctx context.Context, start, end time.Time, limit int) ([]Entry, error)
}

// EntryRepository is the persisted time-entry store. Entries are only ever
// written by the loader and are read-only to the KPI collector.
type EntryRepository interface {
	// Upsert inserts or overwrites by natural key (work_date, employee_name,
	// task). Returns true when a new row was created.
	Upsert(ctx context.Context, rec Record) (created bool, err error)

	// MaxWorkDate is the ingestion watermark; nil when the store is empty.
	MaxWorkDate(ctx context.Context) (*time.Time, error)

	Count(ctx context.Context) (int64, error)

	// SumSubmittedHours totals hours over Submitted rows in [start, end].
	SumSubmittedHours(ctx context.Context, start, end time.Time) (float64, error)

	// SumBilledHours totals hours over in-range rows with an active project
	// and a non-empty order ticket.
	SumBilledHours(ctx context.Context, start, end time.Time) (float64, error)

	// SumHoursForEmployees totals in-range hours for the given employee
	// names (the roster's billable set).
	SumHoursForEmployees(ctx context.Context, start, end time.Time, names []string) (float64, error)

	// CountDistinctWorkDates counts distinct work dates among in-range
	// Submitted rows.
	CountDistinctWorkDates(ctx context.Context, start, end time.Time) (int, error)

	// List returns entries in [start, end] ordered by work date descending,
	// capped at limit.
	List(ctx context.Context, start, end time.Time, limit int) ([]Entry, error)
}
