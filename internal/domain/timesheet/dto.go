package timesheet

import (
	"fmt"
	"io"
)

// FileKind is the declared tabular format of an upload.
type FileKind string

const (
	FileKindCSV  FileKind = ".csv"
	FileKindXLSX FileKind = ".xlsx"
)

// FileType selects which aggregate bucket the extractor's hour sums feed:
// "total" for cumulative exports, "mensual" for one-month slices.
type FileType string

const (
	FileTypeTotal   FileType = "total"
	FileTypeMensual FileType = "mensual"
)

// UploadRequest describes one ingestion call.
type UploadRequest struct {
	File         io.Reader
	FileName     string
	FileType     FileType
	Incremental  bool
	RepairQuotes bool
}

func (r UploadRequest) Validate() error {
	if r.File == nil {
		return fmt.Errorf("%w: file is required", ErrInvalidRequest)
	}
	if r.FileType != FileTypeTotal && r.FileType != FileTypeMensual {
		return fmt.Errorf("%w: file_type must be %q or %q", ErrInvalidRequest, FileTypeTotal, FileTypeMensual)
	}
	return nil
}

// LoadStats is the ingestion statistics object. It is returned even on
// partial failure so callers can see how far a batch got.
type LoadStats struct {
	BatchID      string `json:"batch_id"`
	Created      int    `json:"created"`
	Updated      int    `json:"updated"`
	Errors       int    `json:"errors"`
	TotalInStore int64  `json:"total_in_store"`
}

// ExtractionSummary carries the aggregates derived while extracting,
// alongside the raw record sequence.
type ExtractionSummary struct {
	FileType       FileType              `json:"file_type"`
	EmployeeCount  int                   `json:"employee_count"`
	TotalHours     float64               `json:"total_hours"`
	PlantHours     float64               `json:"plant_hours"`
	HoursByTicket  map[string]HourBucket `json:"hours_by_ticket"`
	ClientByTicket map[string]string     `json:"client_by_ticket"`
	RowErrors      int                   `json:"row_errors"`
	Encoding       string                `json:"encoding"`
}

// UploadResponse is the full ingestion entry-point response.
type UploadResponse struct {
	Stats   LoadStats         `json:"stats"`
	Summary ExtractionSummary `json:"summary"`
}
