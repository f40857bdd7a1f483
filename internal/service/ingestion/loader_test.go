package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

// fakeEntryRepo is an in-memory EntryRepository keyed on the natural key.
type fakeEntryRepo struct {
	entries   map[string]timesheet.Record
	upsertErr error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]timesheet.Record)}
}

func entryKey(rec timesheet.Record) string {
	return rec.WorkDate.Format("2006-01-02") + "|" + rec.EmployeeName + "|" + rec.Task
}

func (f *fakeEntryRepo) Upsert(ctx context.Context, rec timesheet.Record) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	key := entryKey(rec)
	_, exists := f.entries[key]
	f.entries[key] = rec
	return !exists, nil
}

func (f *fakeEntryRepo) MaxWorkDate(ctx context.Context) (*time.Time, error) {
	var max *time.Time
	for _, rec := range f.entries {
		d := rec.WorkDate
		if max == nil || d.After(*max) {
			max = &d
		}
	}
	return max, nil
}

func (f *fakeEntryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

func (f *fakeEntryRepo) SumSubmittedHours(ctx context.Context, start, end time.Time) (float64, error) {
	return 0, nil
}

func (f *fakeEntryRepo) SumBilledHours(ctx context.Context, start, end time.Time) (float64, error) {
	return 0, nil
}

func (f *fakeEntryRepo) SumHoursForEmployees(ctx context.Context, start, end time.Time, names []string) (float64, error) {
	return 0, nil
}

func (f *fakeEntryRepo) CountDistinctWorkDates(ctx context.Context, start, end time.Time) (int, error) {
	return 0, nil
}

func (f *fakeEntryRepo) List(ctx context.Context, start, end time.Time, limit int) ([]timesheet.Entry, error) {
	return nil, nil
}

func submittedRecord(date string, employee, task string, hours float64) timesheet.Record {
	d, _ := time.Parse("2006-01-02", date)
	return timesheet.Record{
		WorkDate:         d,
		EmployeeName:     employee,
		Task:             task,
		HoursWorked:      hours,
		SubmissionStatus: timesheet.StatusSubmitted,
	}
}

func TestLoadCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntryRepo()
	loader := NewLoader(repo)

	records := []timesheet.Record{
		submittedRecord("2024-03-04", "Juan Perez", "Diseño", 8),
		submittedRecord("2024-03-04", "Maria Lopez", "Soporte", 4),
	}

	stats, err := loader.Load(ctx, records, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, int64(2), stats.TotalInStore)
	assert.NotEmpty(t, stats.BatchID)

	// Re-loading the same file updates in place instead of duplicating.
	records[0].HoursWorked = 6
	stats, err = loader.Load(ctx, records, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, int64(2), stats.TotalInStore)

	stored := repo.entries[entryKey(records[0])]
	assert.Equal(t, 6.0, stored.HoursWorked)
}

func TestLoadSkipsNonSubmitted(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntryRepo()
	loader := NewLoader(repo)

	draft := submittedRecord("2024-03-04", "Juan Perez", "Borrador", 3)
	draft.SubmissionStatus = timesheet.StatusDraft

	stats, err := loader.Load(ctx, []timesheet.Record{draft}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, int64(0), stats.TotalInStore)
}

func TestLoadCountsZeroDateAsError(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntryRepo()
	loader := NewLoader(repo)

	rec := timesheet.Record{
		EmployeeName:     "Juan Perez",
		Task:             "Soporte",
		HoursWorked:      2,
		SubmissionStatus: timesheet.StatusSubmitted,
	}

	stats, err := loader.Load(ctx, []timesheet.Record{rec}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, int64(0), stats.TotalInStore)
}

func TestLoadIncrementalWatermark(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntryRepo()
	loader := NewLoader(repo)

	initial := []timesheet.Record{
		submittedRecord("2024-03-04", "Juan Perez", "Diseño", 8),
		submittedRecord("2024-03-05", "Juan Perez", "Diseño", 8),
	}
	_, err := loader.Load(ctx, initial, false)
	require.NoError(t, err)

	// Incremental load: rows at or before the watermark (2024-03-05) are
	// skipped, strictly-later rows are admitted.
	next := []timesheet.Record{
		submittedRecord("2024-03-05", "Maria Lopez", "Soporte", 4),
		submittedRecord("2024-03-06", "Maria Lopez", "Soporte", 4),
	}
	stats, err := loader.Load(ctx, next, true)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, int64(3), stats.TotalInStore)
}

func TestLoadContinuesPastRowFailures(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntryRepo()
	repo.upsertErr = errors.New("connection reset")
	loader := NewLoader(repo)

	records := []timesheet.Record{
		submittedRecord("2024-03-04", "Juan Perez", "Diseño", 8),
		submittedRecord("2024-03-05", "Maria Lopez", "Soporte", 4),
	}

	stats, err := loader.Load(ctx, records, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 0, stats.Created)
}
