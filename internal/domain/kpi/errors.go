package kpi

import "errors"

var (
	// ErrInvalidCode means an unknown formula code was requested. This is a
	// client error, distinct from the zero-division guard which silently
	// yields 0.
	ErrInvalidCode = errors.New("unknown KPI code")

	// ErrInvalidPeriod means start_date is after end_date.
	ErrInvalidPeriod = errors.New("start date must not be after end date")

	// ErrDuplicateBundle means a manual bundle for the same
	// (month, year, file_type) already exists.
	ErrDuplicateBundle = errors.New("a bundle for this period and file type already exists")

	// ErrManualInputNotFound means the requested manual bundle id does not
	// exist.
	ErrManualInputNotFound = errors.New("manual KPI input not found")

	// ErrTargetNotFound means the requested KPI target does not exist.
	ErrTargetNotFound = errors.New("KPI target not found")

	// ErrDuplicateTarget means a target for the same (code, period) already
	// exists.
	ErrDuplicateTarget = errors.New("a target for this KPI and period already exists")

	// ErrMissingPayrollCost means the bundle has no payroll-cost figure at
	// all, so ELDR cannot be evaluated.
	ErrMissingPayrollCost = errors.New("bundle is missing total payroll cost")
)
