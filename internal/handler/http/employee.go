package http

import (
	"net/http"
	"time"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/employee"
	"github.com/kep-sistemas/kep-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	rosterService employee.Service
}

func NewEmployeeHandler(rosterService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{rosterService: rosterService}
}

// List implements EmployeeHandler. Optional query param "as_of"
// (YYYY-MM-DD, default today) filters to employees hired by that date.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "as_of must be YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	employees, err := h.rosterService.ListActive(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}
