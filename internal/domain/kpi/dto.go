package kpi

import (
	"time"
)

// ComputeRequest is the parsed KPI query. Code empty means "all seven".
type ComputeRequest struct {
	StartDate   time.Time
	EndDate     time.Time
	CostPerHour *float64
	Code        Code
}

func (r ComputeRequest) Validate() error {
	if r.StartDate.After(r.EndDate) {
		return ErrInvalidPeriod
	}
	if r.Code != "" && !r.Code.Valid() {
		return ErrInvalidCode
	}
	return nil
}

// ComputeResponse carries the results plus the period bundle's audit fields.
type ComputeResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Bundle    InputsUsed      `json:"bundle"`
	Results   map[Code]Result `json:"results"`
}

// ManualInputRequest is a pre-aggregated bundle submitted directly.
type ManualInputRequest struct {
	Month                 int     `json:"month"`
	Year                  int     `json:"year"`
	FileType              string  `json:"file_type"`
	TotalBillableHours    float64 `json:"total_billable_hours"`
	TotalBilledHours      float64 `json:"total_billed_hours"`
	TotalPlantHours       float64 `json:"total_plant_hours"`
	CostPerHour           float64 `json:"cost_per_hour"`
	TotalProfit           float64 `json:"total_profit"`
	EmployeeCount         int     `json:"employee_count"`
	BillableEmployeeCount int     `json:"billable_employee_count"`
	DaysWorked            int     `json:"days_worked"`
}

func (r ManualInputRequest) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return errValidation("month must be between 1 and 12")
	}
	if r.Year < 2000 || r.Year > 2100 {
		return errValidation("year out of range")
	}
	if r.FileType == "" {
		return errValidation("file_type is required")
	}
	if r.TotalBillableHours < 0 || r.TotalBilledHours < 0 || r.TotalPlantHours < 0 {
		return errValidation("hour totals must not be negative")
	}
	if r.EmployeeCount < 0 || r.BillableEmployeeCount < 0 || r.DaysWorked < 0 {
		return errValidation("counts must not be negative")
	}
	if r.BillableEmployeeCount > r.EmployeeCount {
		return errValidation("billable_employee_count must not exceed employee_count")
	}
	return nil
}

// TargetRequest creates or updates a KPI target.
type TargetRequest struct {
	Code        Code     `json:"code"`
	Period      string   `json:"period"` // YYYY-MM-DD
	TargetValue float64  `json:"target_value"`
	MinValue    *float64 `json:"min_value,omitempty"`
	MaxValue    *float64 `json:"max_value,omitempty"`
}

func (r TargetRequest) Validate() error {
	if !r.Code.Valid() {
		return ErrInvalidCode
	}
	if _, err := time.Parse("2006-01-02", r.Period); err != nil {
		return errValidation("period must be YYYY-MM-DD")
	}
	return nil
}

// ValidationError is a request-shape failure, mapped to 422 by the HTTP
// layer.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func errValidation(msg string) error { return ValidationError{Message: msg} }
