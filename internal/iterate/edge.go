// Package iterate provides the pixel iteration layer shared by the filter
// operators: edge-handling policies for out-of-range samples, row
// descriptors over aligned buffers, and row-range splitting for parallel
// execution.
package iterate

// EdgeMode selects how out-of-range coordinates are resolved when an
// operator samples neighboring pixels near a buffer border. The shipped
// operators all read out-of-range samples as transparent black (EdgeNone);
// blur's sliding window and lighting's reduced-support kernels bake that
// policy into their loops. Duplicate and Wrap are for operators whose
// kernels sample arbitrary neighborhoods, such as convolution.
type EdgeMode uint8

const (
	// EdgeNone treats out-of-range samples as fully transparent black.
	EdgeNone EdgeMode = iota

	// EdgeDuplicate clamps out-of-range coordinates to the nearest edge pixel.
	EdgeDuplicate

	// EdgeWrap wraps out-of-range coordinates modulo the buffer size.
	EdgeWrap
)

// String returns a human-readable name for the edge mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeNone:
		return "None"
	case EdgeDuplicate:
		return "Duplicate"
	case EdgeWrap:
		return "Wrap"
	default:
		return "Unknown"
	}
}

// Resolve maps coordinate v onto [0, size) according to the edge mode.
// The second return is false when the sample must be read as transparent
// black (EdgeNone out of range, or a degenerate zero size).
func (m EdgeMode) Resolve(v, size int) (int, bool) {
	if size <= 0 {
		return 0, false
	}
	if v >= 0 && v < size {
		return v, true
	}
	switch m {
	case EdgeDuplicate:
		if v < 0 {
			return 0, true
		}
		return size - 1, true
	case EdgeWrap:
		v %= size
		if v < 0 {
			v += size
		}
		return v, true
	default:
		return 0, false
	}
}
