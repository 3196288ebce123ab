// Package blur implements the triple box-filter approximation of Gaussian
// blur mandated by the SVG filter model.
//
// Three successive box filters of width d = floor(s*3*sqrt(2π)/4 + 0.5)
// approximate a Gaussian of standard deviation s to within the accuracy the
// filter specification requires. Each pass is a sliding-window sum, so cost
// is linear in pixel count regardless of radius. Out-of-range samples are
// transparent black, the boundary behavior SVG defines for filter buffers.
package blur

import (
	"math"

	"github.com/gogpu/svgfx/internal/parallel"
)

// boxSizeFactor is 3*sqrt(2π)/4 from the SVG filter specification.
var boxSizeFactor = 3 * math.Sqrt(2*math.Pi) / 4

// BoxSize returns the box-filter width d for a Gaussian standard deviation.
func BoxSize(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(sigma*boxSizeFactor + 0.5)
}

// pass describes one box pass as left/right kernel radii.
// The window for output pixel i covers [i-left, i+right].
type pass struct {
	left  int
	right int
}

// passesFor returns the three box passes for box width d.
// For even d the first two passes use split radii (d/2 and d/2-1,
// alternating sides) and the third uses width d+1, avoiding the half-pixel
// directional bias a repeated even-width kernel would introduce.
func passesFor(d int) [3]pass {
	if d%2 == 1 {
		r := (d - 1) / 2
		return [3]pass{{r, r}, {r, r}, {r, r}}
	}
	h := d / 2
	return [3]pass{{h, h - 1}, {h - 1, h}, {h, h}}
}

// Apply blurs premultiplied RGBA samples in place with independent per-axis
// standard deviations. A sigma of zero (or a box width below 2) skips that
// axis entirely. Horizontal passes are parallelized across rows and
// vertical passes across columns via the pool.
func Apply(p *parallel.Pool, data []uint8, width, height int, sigmaX, sigmaY float64) {
	if width <= 0 || height <= 0 {
		return
	}

	dx := BoxSize(sigmaX)
	dy := BoxSize(sigmaY)
	if dx < 2 && dy < 2 {
		return
	}

	tmp := make([]uint8, len(data))

	if dx >= 2 {
		passes := passesFor(dx)
		src, dst := data, tmp
		for _, ps := range passes {
			blurAxis(p, src, dst, width, height, true, ps)
			src, dst = dst, src
		}
		if &src[0] != &data[0] {
			copy(data, src)
		}
	}

	if dy >= 2 {
		passes := passesFor(dy)
		src, dst := data, tmp
		for _, ps := range passes {
			blurAxis(p, src, dst, width, height, false, ps)
			src, dst = dst, src
		}
		if &src[0] != &data[0] {
			copy(data, src)
		}
	}
}

// blurAxis runs one box pass over every line of the chosen axis.
// horizontal selects row lines (stride 4) versus column lines (stride 4*width).
func blurAxis(p *parallel.Pool, src, dst []uint8, width, height int, horizontal bool, ps pass) {
	var lines, length, lineStride, sampleStride int
	if horizontal {
		lines, length = height, width
		lineStride, sampleStride = width*4, 4
	} else {
		lines, length = width, height
		lineStride, sampleStride = 4, width*4
	}

	parallel.ForSpans(p, lines, func(start, end int) {
		for line := start; line < end; line++ {
			base := line * lineStride
			boxLine(src, dst, base, length, sampleStride, ps)
		}
	})
}

// boxLine applies one sliding-window box pass along one line.
// Samples outside [0, length) contribute zero and the divisor stays the
// full window size, which realizes the transparent-black edge policy.
func boxLine(src, dst []uint8, base, length, stride int, ps pass) {
	window := uint32(ps.left + ps.right + 1)
	half := window / 2

	var sumR, sumG, sumB, sumA uint32

	// Prime the accumulator with the window for output pixel 0.
	for j := -ps.left; j <= ps.right; j++ {
		if j < 0 || j >= length {
			continue
		}
		i := base + j*stride
		sumR += uint32(src[i+0])
		sumG += uint32(src[i+1])
		sumB += uint32(src[i+2])
		sumA += uint32(src[i+3])
	}

	for x := 0; x < length; x++ {
		i := base + x*stride
		dst[i+0] = uint8((sumR + half) / window)
		dst[i+1] = uint8((sumG + half) / window)
		dst[i+2] = uint8((sumB + half) / window)
		dst[i+3] = uint8((sumA + half) / window)

		// Slide: admit the sample entering on the right, retire the one
		// leaving on the left.
		if in := x + ps.right + 1; in < length {
			j := base + in*stride
			sumR += uint32(src[j+0])
			sumG += uint32(src[j+1])
			sumB += uint32(src[j+2])
			sumA += uint32(src[j+3])
		}
		if out := x - ps.left; out >= 0 {
			j := base + out*stride
			sumR -= uint32(src[j+0])
			sumG -= uint32(src[j+1])
			sumB -= uint32(src[j+2])
			sumA -= uint32(src[j+3])
		}
	}
}
