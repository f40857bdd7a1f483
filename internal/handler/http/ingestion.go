package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
	"github.com/kep-sistemas/kep-backend-go/internal/handler/http/response"
)

type IngestionHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
}

type ingestionHandlerImpl struct {
	ingestionService timesheet.IngestionService
	maxUploadBytes   int64
}

func NewIngestionHandler(ingestionService timesheet.IngestionService, maxUploadMB int64) IngestionHandler {
	return &ingestionHandlerImpl{
		ingestionService: ingestionService,
		maxUploadBytes:   maxUploadMB << 20,
	}
}

// Upload implements IngestionHandler. Multipart fields: "file" (the export),
// "file_type" (total|mensual), optional "incremental" and "repair_quotes"
// booleans.
func (h *ingestionHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		slog.Error("failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	fileType := timesheet.FileType(r.FormValue("file_type"))
	if fileType == "" {
		fileType = timesheet.FileTypeTotal
	}

	req := timesheet.UploadRequest{
		File:         file,
		FileName:     fileHeader.Filename,
		FileType:     fileType,
		Incremental:  parseBoolField(r.FormValue("incremental")),
		RepairQuotes: parseBoolField(r.FormValue("repair_quotes")),
	}

	result, err := h.ingestionService.Ingest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File ingested", result)
}

// ListEntries implements IngestionHandler. Query params: start_date,
// end_date (YYYY-MM-DD, default last 30 days) and limit.
func (h *ingestionHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "start_date must be YYYY-MM-DD", nil)
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "end_date must be YYYY-MM-DD", nil)
			return
		}
		end = parsed
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.ingestionService.ListEntries(r.Context(), start, end, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func parseBoolField(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}
