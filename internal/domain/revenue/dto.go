package revenue

import "fmt"

type CreateRequest struct {
	Activity string  `json:"activity"`
	Amount   float64 `json:"amount"`
	Kind     string  `json:"kind"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

func (r CreateRequest) Validate() error {
	if r.Activity == "" {
		return fmt.Errorf("%w: activity is required", ErrInvalidRequest)
	}
	if r.Kind != KindDirect && r.Kind != KindIndirect {
		return fmt.Errorf("%w: kind must be %q or %q", ErrInvalidRequest, KindDirect, KindIndirect)
	}
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidRequest)
	}
	if r.Year < 2000 || r.Year > 2100 {
		return fmt.Errorf("%w: year out of range", ErrInvalidRequest)
	}
	return nil
}

// Totals is the summed revenue over a month range, split by kind.
type Totals struct {
	Direct   float64 `json:"direct"`
	Indirect float64 `json:"indirect"`
}

func (t Totals) Total() float64 {
	return t.Direct + t.Indirect
}
