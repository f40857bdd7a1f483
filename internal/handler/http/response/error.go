package response

import (
	"errors"
	"net/http"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/revenue"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErr kpi.ValidationError
	if errors.As(err, &validationErr) {
		ValidationError(w, validationErr.Message)
		return
	}

	switch {
	// Ingestion domain errors
	case errors.Is(err, timesheet.ErrSchema):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrUnsupportedFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrEmptyFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrInvalidRequest):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, revenue.ErrInvalidRequest):
		BadRequest(w, err.Error(), nil)

	// KPI domain errors
	case errors.Is(err, kpi.ErrInvalidCode):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, kpi.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, kpi.ErrDuplicateBundle):
		Conflict(w, "A bundle for this period and file type already exists")
	case errors.Is(err, kpi.ErrDuplicateTarget):
		Conflict(w, "A target for this KPI and period already exists")
	case errors.Is(err, kpi.ErrManualInputNotFound):
		NotFound(w, "Manual KPI input not found")
	case errors.Is(err, kpi.ErrTargetNotFound):
		NotFound(w, "KPI target not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
