package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/textenc"
)

type ingestionServiceImpl struct {
	repo          timesheet.EntryRepository
	loader        *Loader
	plantKeywords []string
}

// NewIngestionService wires the full pipeline: encoding normalization,
// extraction, deduplicating load. plantKeywords overrides the default
// plant-task classifier when non-empty.
func NewIngestionService(repo timesheet.EntryRepository, plantKeywords []string) timesheet.IngestionService {
	return &ingestionServiceImpl{
		repo:          repo,
		loader:        NewLoader(repo),
		plantKeywords: plantKeywords,
	}
}

const maxEntryPageSize = 500

// ListEntries implements timesheet.IngestionService.
func (s *ingestionServiceImpl) ListEntries(ctx context.Context, start, end time.Time, limit int) ([]timesheet.Entry, error) {
	if limit <= 0 || limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}
	return s.repo.List(ctx, start, end, limit)
}

// Ingest implements timesheet.IngestionService.
func (s *ingestionServiceImpl) Ingest(ctx context.Context, req timesheet.UploadRequest) (timesheet.UploadResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.UploadResponse{}, err
	}

	kind, err := fileKind(req.FileName)
	if err != nil {
		return timesheet.UploadResponse{}, err
	}

	raw, err := io.ReadAll(req.File)
	if err != nil {
		return timesheet.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	opts := ExtractOptions{FileType: req.FileType, PlantKeywords: s.plantKeywords}

	var extraction *Extraction
	var encodingName string
	switch kind {
	case timesheet.FileKindCSV:
		// Excel workbooks are containers and skip text normalization;
		// CSVs go through the encoding funnel first.
		normalized, name := textenc.Normalize(raw)
		encodingName = name
		if req.RepairQuotes {
			normalized = textenc.RepairQuotes(normalized)
		}
		extraction, err = ExtractCSV(bytes.NewReader(normalized), opts)
	case timesheet.FileKindXLSX:
		encodingName = "xlsx"
		extraction, err = ExtractXLSX(bytes.NewReader(raw), opts)
	}
	if err != nil {
		return timesheet.UploadResponse{}, err
	}
	extraction.Summary.Encoding = encodingName

	slog.Info("extraction complete",
		"file", req.FileName,
		"file_type", req.FileType,
		"encoding", encodingName,
		"records", len(extraction.Records),
		"row_errors", extraction.Summary.RowErrors,
	)

	records := extraction.Records
	if !extraction.HasDates {
		// Aggregate exports carry no date column; the summary is the
		// useful output and there is nothing to persist per day.
		slog.Info("no date column resolved, skipping entry load", "file", req.FileName)
		records = nil
	}

	stats, err := s.loader.Load(ctx, records, req.Incremental)
	if err != nil {
		return timesheet.UploadResponse{}, err
	}
	stats.Errors += extraction.Summary.RowErrors

	return timesheet.UploadResponse{
		Stats:   stats,
		Summary: extraction.Summary,
	}, nil
}

func fileKind(name string) (timesheet.FileKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return timesheet.FileKindCSV, nil
	case ".xlsx":
		return timesheet.FileKindXLSX, nil
	case ".xls":
		// the workbook reader only understands the OOXML container
		return "", fmt.Errorf("%w: legacy .xls, re-export as .xlsx or .csv", timesheet.ErrUnsupportedFile)
	default:
		return "", fmt.Errorf("%w: %s", timesheet.ErrUnsupportedFile, filepath.Ext(name))
	}
}
