package revenue

import "errors"

// ErrInvalidRequest means the revenue payload failed validation.
var ErrInvalidRequest = errors.New("invalid revenue request")
