package svgfx

import "errors"

// Graph-structural errors abort the whole filter evaluation; the evaluator
// yields the configured fallback buffer alongside the error. Numeric edge
// cases (zero radius, degenerate normals, empty regions) are never errors:
// each has a defined fallback value and evaluation continues.
var (
	// ErrInvalidReference means a primitive names an input that no earlier
	// primitive produces.
	ErrInvalidReference = errors.New("svgfx: primitive references an undefined input")

	// ErrCycle means the named inputs can never all be satisfied because
	// result references form a cycle.
	ErrCycle = errors.New("svgfx: filter graph contains a reference cycle")

	// ErrDimensionMismatch means an input buffer does not match the filter
	// region dimensions. This indicates a bug in the graph-building layer,
	// not a runtime condition.
	ErrDimensionMismatch = errors.New("svgfx: input buffer dimensions do not match filter region")
)
