package filter

import "errors"

// Sentinel kinds for the pipeline.
var (
	ErrInvalidCriteria = errors.New("invalid criteria")
)
