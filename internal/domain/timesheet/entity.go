package timesheet

import (
	"time"
)

// Submission status values as they appear in the time-tracking exports.
// Anything other than Submitted is never persisted.
const (
	StatusSubmitted = "Submitted"
	StatusDraft     = "Draft"
)

// Entry is one unit of worked time, keyed by (WorkDate, EmployeeName, Task).
// EmployeeName is the free-text name from the export, not a roster foreign
// key; roster matching happens by name at aggregation time.
type Entry struct {
	ID               string    `json:"id"`
	WorkDate         time.Time `json:"work_date"`
	EmployeeName     string    `json:"employee_name"`
	Task             string    `json:"task"`
	HoursWorked      float64   `json:"hours_worked"`
	SubmissionStatus string    `json:"submission_status"`
	EmployeeGroup    string    `json:"employee_group,omitempty"`
	Manager          string    `json:"manager,omitempty"`
	ProjectActive    bool      `json:"project_active"`
	OrderTicket      *string   `json:"order_ticket"`
	PlantCode        *string   `json:"plant_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Record is a raw extracted row before it is loaded. OrderTicket is empty
// when the project label did not match the ticket pattern; PlantCode then
// carries the raw label.
type Record struct {
	WorkDate         time.Time
	EmployeeName     string
	Task             string
	HoursWorked      float64
	SubmissionStatus string
	EmployeeGroup    string
	Manager          string
	ProjectActive    bool
	OrderTicket      string
	PlantCode        string
}

// HourBucket accumulates total and plant-classified hours for one order
// ticket.
type HourBucket struct {
	Total float64
	Plant float64
}
