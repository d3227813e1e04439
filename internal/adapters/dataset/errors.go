package dataset

import "errors"

// Sentinel kinds for dataset loading. Callers match with errors.Is.
var (
	ErrDataUnavailable   = errors.New("data unavailable")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
