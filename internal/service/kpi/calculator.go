package kpi

import (
	"fmt"
	"math"

	domain "github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
)

// MaxBillableHoursPerDay is the capacity assumption behind LMM: each
// billable employee can book at most this many hours per worked day.
const MaxBillableHoursPerDay = 8.5

// formula evaluates one KPI over a bundle. A zero denominator returns 0
// with no error; an error means the bundle is malformed for this formula.
type formula func(b domain.InputBundle) (float64, error)

// formulas is the closed dispatch table over the seven KPI codes.
var formulas = map[domain.Code]formula{
	domain.ELDR: eldr,
	domain.RE:   re,
	domain.RBE:  rbe,
	domain.UBH:  ubh,
	domain.UB:   ub,
	domain.LM:   lm,
	domain.LMM:  lmm,
}

// Calculator evaluates the KPI formula set over input bundles. It is pure:
// no storage access, safe for concurrent use.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute evaluates one code. Unknown codes fail with
// kpi.ErrInvalidCode; numeric edge cases never fail (zero-guard policy).
func (c *Calculator) Compute(code domain.Code, b domain.InputBundle) (domain.Result, error) {
	fn, ok := formulas[code]
	if !ok {
		return domain.Result{}, fmt.Errorf("%w: %q", domain.ErrInvalidCode, code)
	}

	result := domain.Result{Code: code, Inputs: b.Snapshot()}

	value, err := fn(b)
	if err != nil {
		msg := err.Error()
		result.Error = &msg
		return result, nil
	}

	result.Value = round2(value)
	return result, nil
}

// ComputeAll evaluates all seven formulas. A failure in one formula is
// reflected in its own result and never disturbs the others.
func (c *Calculator) ComputeAll(b domain.InputBundle) map[domain.Code]domain.Result {
	results := make(map[domain.Code]domain.Result, len(domain.Codes))
	for _, code := range domain.Codes {
		result, err := c.Compute(code, b)
		if err != nil {
			// unreachable for the closed code list, but keep the isolation
			// guarantee airtight
			msg := err.Error()
			results[code] = domain.Result{Code: code, Inputs: b.Snapshot(), Error: &msg}
			continue
		}
		results[code] = result
	}
	return results
}

// eldr is earnings per labor dollar: profit over total payroll cost.
func eldr(b domain.InputBundle) (float64, error) {
	if b.TotalPayrollCost == nil {
		return 0, domain.ErrMissingPayrollCost
	}
	if *b.TotalPayrollCost == 0 {
		return 0, nil
	}
	return b.TotalProfit / *b.TotalPayrollCost, nil
}

// re is revenue per employee.
func re(b domain.InputBundle) (float64, error) {
	if b.EmployeeCount == 0 {
		return 0, nil
	}
	return b.TotalProfit / float64(b.EmployeeCount), nil
}

// rbe is revenue per billable employee.
func rbe(b domain.InputBundle) (float64, error) {
	if b.BillableEmployeeCount == 0 {
		return 0, nil
	}
	return b.TotalProfit / float64(b.BillableEmployeeCount), nil
}

// ubh is the percentage of billable hours actually billed.
func ubh(b domain.InputBundle) (float64, error) {
	if b.TotalBillableHours == 0 {
		return 0, nil
	}
	return b.TotalBilledHours / b.TotalBillableHours * 100, nil
}

// ub is the percentage of plant hours that were billable.
func ub(b domain.InputBundle) (float64, error) {
	if b.TotalPlantHours == 0 {
		return 0, nil
	}
	return b.TotalBillableHours / b.TotalPlantHours * 100, nil
}

// lm is the labor multiplier: profit over the cost of the billed hours.
func lm(b domain.InputBundle) (float64, error) {
	laborCost := b.TotalBilledHours * b.CostPerHour
	if laborCost == 0 {
		return 0, nil
	}
	return b.TotalProfit / laborCost, nil
}

// lmm is the theoretical maximum of billable hours for the period; it has
// no denominator and is always defined.
func lmm(b domain.InputBundle) (float64, error) {
	return MaxBillableHoursPerDay * float64(b.BillableEmployeeCount) * float64(b.DaysWorked), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
