package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
	"github.com/kep-sistemas/kep-backend-go/internal/handler/http/response"
)

type KpiHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	ListCodes(w http.ResponseWriter, r *http.Request)
	CreateManualInput(w http.ResponseWriter, r *http.Request)
	ListManualInputs(w http.ResponseWriter, r *http.Request)
	GetManualInput(w http.ResponseWriter, r *http.Request)
	CreateTarget(w http.ResponseWriter, r *http.Request)
	ListTargets(w http.ResponseWriter, r *http.Request)
	UpdateTarget(w http.ResponseWriter, r *http.Request)
	DeleteTarget(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.Service
}

func NewKpiHandler(kpiService kpi.Service) KpiHandler {
	return &kpiHandlerImpl{kpiService: kpiService}
}

// Compute implements KpiHandler. Query params: start_date, end_date
// (YYYY-MM-DD; default is the current month so far), cost_per_hour
// (override) and code (single indicator instead of all seven).
func (h *kpiHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "end_date must be YYYY-MM-DD", nil)
			return
		}
		endDate = parsed
	}

	startDate := time.Date(endDate.Year(), endDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "start_date must be YYYY-MM-DD", nil)
			return
		}
		startDate = parsed
	}

	req := kpi.ComputeRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Code:      kpi.Code(r.URL.Query().Get("code")),
	}
	if raw := r.URL.Query().Get("cost_per_hour"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			response.BadRequest(w, "cost_per_hour must be a non-negative number", nil)
			return
		}
		req.CostPerHour = &value
	}

	result, err := h.kpiService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListCodes implements KpiHandler. It backs the indicator picker in the
// dashboard, so the order matches the canonical code list.
func (h *kpiHandlerImpl) ListCodes(w http.ResponseWriter, r *http.Request) {
	type codeInfo struct {
		Code        kpi.Code `json:"code"`
		Description string   `json:"description"`
	}

	codes := make([]codeInfo, 0, len(kpi.Codes))
	for _, code := range kpi.Codes {
		codes = append(codes, codeInfo{Code: code, Description: code.Description()})
	}

	response.Success(w, codes)
}

func (h *kpiHandlerImpl) CreateManualInput(w http.ResponseWriter, r *http.Request) {
	var req kpi.ManualInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	input, err := h.kpiService.CreateManualInput(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual KPI input created", input)
}

func (h *kpiHandlerImpl) ListManualInputs(w http.ResponseWriter, r *http.Request) {
	inputs, err := h.kpiService.ListManualInputs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inputs)
}

func (h *kpiHandlerImpl) GetManualInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	input, err := h.kpiService.GetManualInput(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, input)
}

func (h *kpiHandlerImpl) CreateTarget(w http.ResponseWriter, r *http.Request) {
	var req kpi.TargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	target, err := h.kpiService.CreateTarget(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "KPI target created", target)
}

func (h *kpiHandlerImpl) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.kpiService.ListTargets(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, targets)
}

func (h *kpiHandlerImpl) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req kpi.TargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	target, err := h.kpiService.UpdateTarget(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI target updated", target)
}

func (h *kpiHandlerImpl) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.kpiService.DeleteTarget(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI target deleted", nil)
}
