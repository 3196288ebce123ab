package parallel

import "github.com/gogpu/svgfx/internal/iterate"

// ForSpans splits [0, n) into one contiguous span per worker and runs
// fn(start, end) for each span across the pool, joining before return.
// Spans never overlap, so fn may write freely inside its range.
func ForSpans(p *Pool, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	spans := iterate.SplitSpans(n, p.Workers())
	if len(spans) == 1 {
		fn(spans[0].Start, spans[0].End)
		return
	}
	work := make([]func(), len(spans))
	for i, s := range spans {
		span := s
		work[i] = func() { fn(span.Start, span.End) }
	}
	p.Run(work)
}
