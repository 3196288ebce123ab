package iterate

import "image"

// Row describes one horizontal span of aligned samples at the same y in
// every participating buffer. Pix holds, per buffer, the sub-slice covering
// exactly the span [MinX, MaxX) at 4 bytes per pixel.
type Row struct {
	Y    int
	MinX int
	MaxX int

	// Pix holds one aligned sample slice per participating buffer,
	// in the order the buffers were passed to Rows.
	Pix [][]uint8
}

// Rows returns per-row access descriptors for region over one or more
// buffers of identical dimensions (width*height*4 bytes each). The sequence
// is finite and restartable: each call builds fresh descriptors.
//
// Rows from disjoint y ranges never alias each other's writes, so a caller
// may hand sub-ranges of the returned slice to independent workers.
func Rows(region image.Rectangle, width, height int, bufs ...[]uint8) []Row {
	region = region.Intersect(image.Rect(0, 0, width, height))
	if region.Empty() {
		return nil
	}
	rows := make([]Row, 0, region.Dy())
	for y := region.Min.Y; y < region.Max.Y; y++ {
		r := Row{Y: y, MinX: region.Min.X, MaxX: region.Max.X, Pix: make([][]uint8, len(bufs))}
		lo := (y*width + region.Min.X) * 4
		hi := (y*width + region.Max.X) * 4
		for i, b := range bufs {
			r.Pix[i] = b[lo:hi:hi]
		}
		rows = append(rows, r)
	}
	return rows
}

// Span is a half-open index range [Start, End) assigned to one worker.
type Span struct {
	Start int
	End   int
}

// SplitSpans splits [0, n) into at most parts contiguous spans of
// near-equal length. Empty spans are never produced.
func SplitSpans(n, parts int) []Span {
	if n <= 0 {
		return nil
	}
	if parts <= 1 || parts > n {
		if n < parts {
			parts = n
		}
		if parts <= 1 {
			return []Span{{Start: 0, End: n}}
		}
	}
	spans := make([]Span, 0, parts)
	chunk := n / parts
	rem := n % parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + chunk
		if i < rem {
			end++
		}
		if end > start {
			spans = append(spans, Span{Start: start, End: end})
		}
		start = end
	}
	return spans
}
