package kpi

import "time"

// Code identifies one of the seven KPI formulas. The set is closed;
// dispatch is an explicit table keyed by Code, never name reflection.
type Code string

const (
	ELDR Code = "ELDR" // Earnings per Labor Dollar Rate
	RE   Code = "RE"   // Revenue per Employee
	RBE  Code = "RBE"  // Revenue per Billable Employee
	UBH  Code = "UBH"  // Utilization of Billable Hours
	UB   Code = "UB"   // Utilization Benchmark
	LM   Code = "LM"   // Labor Multiplier
	LMM  Code = "LMM"  // Labor Maximum Multiplier
)

// Codes lists all formulas in canonical order.
var Codes = []Code{ELDR, RE, RBE, UBH, UB, LM, LMM}

// Valid reports whether c is one of the seven known codes.
func (c Code) Valid() bool {
	switch c {
	case ELDR, RE, RBE, UBH, UB, LM, LMM:
		return true
	}
	return false
}

// Description returns the long display name for a code.
func (c Code) Description() string {
	switch c {
	case ELDR:
		return "Earnings per Labor Dollar Rate (ELDR)"
	case RE:
		return "Revenue per Employee (RE)"
	case RBE:
		return "Revenue per Billable Employee (RBE)"
	case UBH:
		return "Utilization Billable Hours (UBH)"
	case UB:
		return "Utilization Benchmark (UB)"
	case LM:
		return "Labor Multiplier (LM)"
	case LMM:
		return "Labor Maximum Multiplier (LMM)"
	}
	return string(c)
}

// InputBundle is the request-scoped aggregate the collector builds and the
// calculator consumes. Hour and count fields are always >= 0 and
// BillableEmployeeCount <= EmployeeCount. The pointer fields distinguish
// "entirely absent" (nil, a formula error for ELDR) from an actual zero
// (which only triggers the zero-division guard).
type InputBundle struct {
	TotalBillableHours    float64
	TotalBilledHours      float64
	TotalPlantHours       float64
	CostPerHour           float64
	TotalProfit           float64
	EmployeeCount         int
	BillableEmployeeCount int
	DaysWorked            int

	TotalPayrollCost *float64
	DirectRevenue    *float64
	IndirectRevenue  *float64
}

// InputsUsed is the audit snapshot attached to every result so a caller can
// diagnose an unexpected zero.
type InputsUsed struct {
	DaysWorked            int     `json:"days_worked"`
	EmployeeCount         int     `json:"employee_count"`
	BillableEmployeeCount int     `json:"billable_employee_count"`
	TotalPlantHours       float64 `json:"total_plant_hours"`
	TotalBillableHours    float64 `json:"total_billable_hours"`
	TotalBilledHours      float64 `json:"total_billed_hours"`
	TotalProfit           float64 `json:"total_profit"`
	CostPerHour           float64 `json:"cost_per_hour"`
}

// Snapshot extracts the audit view of a bundle.
func (b InputBundle) Snapshot() InputsUsed {
	return InputsUsed{
		DaysWorked:            b.DaysWorked,
		EmployeeCount:         b.EmployeeCount,
		BillableEmployeeCount: b.BillableEmployeeCount,
		TotalPlantHours:       b.TotalPlantHours,
		TotalBillableHours:    b.TotalBillableHours,
		TotalBilledHours:      b.TotalBilledHours,
		TotalProfit:           b.TotalProfit,
		CostPerHour:           b.CostPerHour,
	}
}

// Result is one formula evaluation. A zero denominator yields Value 0 with
// no error; Error is set only for malformed input (e.g. a bundle missing
// payroll cost entirely).
type Result struct {
	Code   Code       `json:"kpi"`
	Value  float64    `json:"value"`
	Inputs InputsUsed `json:"inputs_used"`
	Error  *string    `json:"error,omitempty"`
}

// ManualInput is a pre-aggregated bundle loaded through the manual entry
// point, bypassing the collector. Unique per (Month, Year, FileType).
type ManualInput struct {
	ID                    string    `json:"id"`
	Month                 int       `json:"month"`
	Year                  int       `json:"year"`
	FileType              string    `json:"file_type"`
	TotalBillableHours    float64   `json:"total_billable_hours"`
	TotalBilledHours      float64   `json:"total_billed_hours"`
	TotalPlantHours       float64   `json:"total_plant_hours"`
	CostPerHour           float64   `json:"cost_per_hour"`
	TotalProfit           float64   `json:"total_profit"`
	EmployeeCount         int       `json:"employee_count"`
	BillableEmployeeCount int       `json:"billable_employee_count"`
	DaysWorked            int       `json:"days_worked"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Bundle converts a manual input into a computable bundle.
func (m ManualInput) Bundle() InputBundle {
	return InputBundle{
		TotalBillableHours:    m.TotalBillableHours,
		TotalBilledHours:      m.TotalBilledHours,
		TotalPlantHours:       m.TotalPlantHours,
		CostPerHour:           m.CostPerHour,
		TotalProfit:           m.TotalProfit,
		EmployeeCount:         m.EmployeeCount,
		BillableEmployeeCount: m.BillableEmployeeCount,
		DaysWorked:            m.DaysWorked,
	}
}

// Target is a goal value for one KPI in one period, unique per
// (Code, Period).
type Target struct {
	ID          string    `json:"id"`
	Code        Code      `json:"code"`
	Period      time.Time `json:"period"`
	TargetValue float64   `json:"target_value"`
	MinValue    *float64  `json:"min_value,omitempty"`
	MaxValue    *float64  `json:"max_value,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
