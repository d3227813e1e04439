package chart

import "errors"

var (
	// ErrUnsupportedFormat is returned for image formats other than SVG and PNG.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
	// ErrNoPoints is returned when there is nothing to plot.
	ErrNoPoints = errors.New("no points to plot")
	// ErrRender wraps failures from the chart library.
	ErrRender = errors.New("render chart")
)
