package svgfx

// FallbackPolicy selects what Evaluate returns alongside the error when a
// graph-structural failure aborts the evaluation. The filter specification
// mandates a defined degraded output rather than a crash; which one is an
// integration policy, so it is configurable here.
type FallbackPolicy uint8

const (
	// FallbackTransparent yields a transparent-black buffer of the filter
	// region's size on failure.
	FallbackTransparent FallbackPolicy = iota

	// FallbackSourceGraphic yields a clone of the unfiltered SourceGraphic
	// on failure.
	FallbackSourceGraphic
)

// Option configures an Evaluator during creation.
//
// Example:
//
//	ev := svgfx.New(region, scale,
//	    svgfx.WithWorkers(4),
//	    svgfx.WithFallback(svgfx.FallbackSourceGraphic))
type Option func(*evalOptions)

// evalOptions holds optional configuration for Evaluator creation.
type evalOptions struct {
	workers    int
	fallback   FallbackPolicy
	background *Pixmap
}

// defaultOptions returns the default evaluator options.
func defaultOptions() evalOptions {
	return evalOptions{
		workers:  0, // 0 = GOMAXPROCS
		fallback: FallbackTransparent,
	}
}

// WithWorkers sets the number of parallel workers for pixel operators.
// Zero or negative selects GOMAXPROCS; one forces serial execution.
func WithWorkers(n int) Option {
	return func(o *evalOptions) {
		o.workers = n
	}
}

// WithFallback sets the degraded-output policy for failed evaluations.
func WithFallback(policy FallbackPolicy) Option {
	return func(o *evalOptions) {
		o.fallback = policy
	}
}

// WithBackground supplies the BackgroundImage well-known input. Without
// it, primitives referencing BackgroundImage receive transparent black.
func WithBackground(pm *Pixmap) Option {
	return func(o *evalOptions) {
		o.background = pm
	}
}
