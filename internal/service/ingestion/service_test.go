package ingestion

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

// uploadFixture is one cumulative export: a good row, a row with an
// unparseable date and a draft row, with accented names throughout so the
// single-byte encodings differ from UTF-8 on the wire.
func uploadFixture() string {
	return strings.Join([]string{
		"Project,Client,Employee,Task,Hours,Date,Status",
		"OT12-3-4567 - Acme,Acme,Juan Pérez,Diseño,8,2024-03-04,Submitted",
		"OT12-3-4567 - Acme,Acme,Juan Pérez,Revisión,2,someday,Submitted",
		"OT12-3-4567 - Acme,Acme,Juan Pérez,Borrador,3,2024-03-05,Draft",
	}, "\n") + "\n"
}

func encodeUTF16LEWithBOM(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func encodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	// An odd byte count keeps the sniffer off the BOM-less UTF-16 path;
	// the extra blank line is invisible to the CSV reader.
	if len(out)%2 == 0 {
		out = append(out, '\n')
	}
	return out
}

func ingestBytes(t *testing.T, repo *fakeEntryRepo, name string, data []byte) timesheet.UploadResponse {
	t.Helper()
	svc := NewIngestionService(repo, nil)
	resp, err := svc.Ingest(context.Background(), timesheet.UploadRequest{
		File:     bytes.NewReader(data),
		FileName: name,
		FileType: timesheet.FileTypeTotal,
	})
	require.NoError(t, err)
	return resp
}

func TestIngestCSVEndToEnd(t *testing.T) {
	repo := newFakeEntryRepo()
	resp := ingestBytes(t, repo, "export.csv", []byte(uploadFixture()))

	assert.Equal(t, "utf-8", resp.Summary.Encoding)

	// One submitted row lands; the bad-date row is the single error and
	// the draft row is extracted but never persisted.
	assert.Equal(t, 1, resp.Stats.Created)
	assert.Equal(t, 0, resp.Stats.Updated)
	assert.Equal(t, 1, resp.Stats.Errors)
	assert.Equal(t, int64(1), resp.Stats.TotalInStore)
	assert.NotEmpty(t, resp.Stats.BatchID)

	assert.Equal(t, 1, resp.Summary.RowErrors)
	assert.Equal(t, 1, resp.Summary.EmployeeCount)
	assert.InDelta(t, 11.0, resp.Summary.TotalHours, 0.001)
	assert.Equal(t, "Acme", resp.Summary.ClientByTicket["OT12-3-4567"])
}

func TestIngestEncodingsYieldIdenticalEntries(t *testing.T) {
	content := uploadFixture()

	utf8Repo := newFakeEntryRepo()
	utf8Resp := ingestBytes(t, utf8Repo, "export.csv", []byte(content))

	utf16Repo := newFakeEntryRepo()
	utf16Resp := ingestBytes(t, utf16Repo, "export.csv", encodeUTF16LEWithBOM(content))

	latinRepo := newFakeEntryRepo()
	latinResp := ingestBytes(t, latinRepo, "export.csv", encodeLatin1(content))

	assert.Equal(t, "utf-16le", utf16Resp.Summary.Encoding)
	assert.Equal(t, "cp1252", latinResp.Summary.Encoding)

	// Same logical content, same persisted entries and aggregates.
	assert.Equal(t, utf8Repo.entries, utf16Repo.entries)
	assert.Equal(t, utf8Repo.entries, latinRepo.entries)

	assert.Equal(t, utf8Resp.Stats.Created, utf16Resp.Stats.Created)
	assert.Equal(t, utf8Resp.Stats.Errors, latinResp.Stats.Errors)
	assert.Equal(t, utf8Resp.Summary.HoursByTicket, utf16Resp.Summary.HoursByTicket)
	assert.Equal(t, utf8Resp.Summary.HoursByTicket, latinResp.Summary.HoursByTicket)
}

func TestIngestRejectsLegacyExcel(t *testing.T) {
	svc := NewIngestionService(newFakeEntryRepo(), nil)
	_, err := svc.Ingest(context.Background(), timesheet.UploadRequest{
		File:     strings.NewReader("not a workbook"),
		FileName: "report.xls",
		FileType: timesheet.FileTypeTotal,
	})
	assert.ErrorIs(t, err, timesheet.ErrUnsupportedFile)
}

func TestIngestRejectsUnknownExtension(t *testing.T) {
	svc := NewIngestionService(newFakeEntryRepo(), nil)
	_, err := svc.Ingest(context.Background(), timesheet.UploadRequest{
		File:     strings.NewReader("hello"),
		FileName: "notes.txt",
		FileType: timesheet.FileTypeTotal,
	})
	assert.ErrorIs(t, err, timesheet.ErrUnsupportedFile)
}

func TestIngestAggregateFileSkipsLoad(t *testing.T) {
	input := strings.Join([]string{
		"Project,Client,Employee,Task,Hours",
		"OT12-3-4567 - Acme,Acme,Juan Pérez,Diseño,8",
		"OT12-3-4567 - Acme,Acme,Maria López,Mantenimiento planta,4",
	}, "\n") + "\n"

	repo := newFakeEntryRepo()
	resp := ingestBytes(t, repo, "resumen.csv", []byte(input))

	// Without a date column nothing is persisted, and the rows are not
	// miscounted as load errors; the summary still carries the totals.
	assert.Equal(t, 0, resp.Stats.Created)
	assert.Equal(t, 0, resp.Stats.Errors)
	assert.Equal(t, int64(0), resp.Stats.TotalInStore)
	assert.Empty(t, repo.entries)

	assert.InDelta(t, 12.0, resp.Summary.TotalHours, 0.001)
	assert.InDelta(t, 4.0, resp.Summary.PlantHours, 0.001)
	assert.Equal(t, 2, resp.Summary.EmployeeCount)
}
