package player

import "errors"

// Sentinel kinds for the player model.
var (
	ErrUnknownMetric = errors.New("unknown metric")
)
