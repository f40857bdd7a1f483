package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/revenue"
	"github.com/kep-sistemas/kep-backend-go/internal/handler/http/response"
)

type RevenueHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListActivities(w http.ResponseWriter, r *http.Request)
}

type revenueHandlerImpl struct {
	revenueService revenue.Service
}

func NewRevenueHandler(revenueService revenue.Service) RevenueHandler {
	return &revenueHandlerImpl{revenueService: revenueService}
}

func (h *revenueHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req revenue.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rev, err := h.revenueService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Revenue record created", rev)
}

// List implements RevenueHandler. Optional query param "year" filters to a
// single year.
func (h *revenueHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = parsed
	}

	revenues, err := h.revenueService.List(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, revenues)
}

// ListActivities implements RevenueHandler. It backs the activity and kind
// dropdowns on the revenue entry form.
func (h *revenueHandlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"activities": revenue.Activities,
		"kinds":      []string{revenue.KindDirect, revenue.KindIndirect},
	})
}
