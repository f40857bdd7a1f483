package employee

import "time"

// Employee is a roster row. Rows are written by the HR CRUD surface, which
// lives outside this service; the KPI collector and the roster listing only
// read them. Billable is derived from the department name, not stored.
type Employee struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Position       string    `json:"position,omitempty"`
	Email          string    `json:"email"`
	HireDate       time.Time `json:"hire_date"`
	Active         bool      `json:"active"`
	Salary         float64   `json:"salary"`
	DepartmentName *string   `json:"department_name"`
	Billable       bool      `json:"billable"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
