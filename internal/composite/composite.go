// Package composite implements pixel-wise combination of two premultiplied
// buffers: the Porter-Duff operator family via standard Fa/Fb coefficient
// pairs, and the SVG arithmetic k1..k4 mode.
//
// All operations work with premultiplied alpha values in the range 0-255
// and never convert color space; callers pre-convert when a rule requires
// linear light.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package composite

import (
	"image"

	"github.com/gogpu/svgfx/internal/iterate"
	"github.com/gogpu/svgfx/internal/parallel"
)

// Operator identifies a compositing rule.
type Operator uint8

const (
	// Over places A on top of B: A + B*(1-Aa).
	Over Operator = iota
	// In keeps A where B is opaque: A*Ba.
	In
	// Out keeps A where B is transparent: A*(1-Ba).
	Out
	// Atop keeps A inside B and B outside A: A*Ba + B*(1-Aa).
	Atop
	// Xor keeps each image where the other is absent: A*(1-Ba) + B*(1-Aa).
	Xor
	// Lighter sums both images, clamped: A + B.
	Lighter
	// Arithmetic computes k1*A*B + k2*A + k3*B + k4 per channel.
	Arithmetic
)

// String returns a human-readable name for the operator.
func (op Operator) String() string {
	switch op {
	case Over:
		return "Over"
	case In:
		return "In"
	case Out:
		return "Out"
	case Atop:
		return "Atop"
	case Xor:
		return "Xor"
	case Lighter:
		return "Lighter"
	case Arithmetic:
		return "Arithmetic"
	default:
		return "Unknown"
	}
}

// PixelFunc combines one premultiplied pixel of A over one of B.
type PixelFunc func(ar, ag, ab, aa, br, bg, bb, ba uint8) (r, g, b, a uint8)

// Func returns the pixel function for a Porter-Duff operator.
// Arithmetic has per-node coefficients and is dispatched separately;
// unknown operators fall back to Over.
func Func(op Operator) PixelFunc {
	switch op {
	case In:
		return compositeIn
	case Out:
		return compositeOut
	case Atop:
		return compositeAtop
	case Xor:
		return compositeXor
	case Lighter:
		return compositeLighter
	default:
		return compositeOver
	}
}

// compositeOver: Fa = 1, Fb = 1-Aa.
func compositeOver(ar, ag, ab, aa, br, bg, bb, ba uint8) (uint8, uint8, uint8, uint8) {
	invAa := 255 - aa
	return clampAdd(ar, mulDiv255(br, invAa)),
		clampAdd(ag, mulDiv255(bg, invAa)),
		clampAdd(ab, mulDiv255(bb, invAa)),
		clampAdd(aa, mulDiv255(ba, invAa))
}

// compositeIn: Fa = Ba, Fb = 0.
func compositeIn(ar, ag, ab, aa, br, bg, bb, ba uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(ar, ba), mulDiv255(ag, ba), mulDiv255(ab, ba), mulDiv255(aa, ba)
}

// compositeOut: Fa = 1-Ba, Fb = 0.
func compositeOut(ar, ag, ab, aa, br, bg, bb, ba uint8) (uint8, uint8, uint8, uint8) {
	invBa := 255 - ba
	return mulDiv255(ar, invBa), mulDiv255(ag, invBa), mulDiv255(ab, invBa), mulDiv255(aa, invBa)
}

// compositeAtop: Fa = Ba, Fb = 1-Aa.
func compositeAtop(ar, ag, ab, aa, br, bg, bb, ba uint8) (uint8, uint8, uint8, uint8) {
	invAa := 255 - aa
	return clampAdd(mulDiv255(ar, ba), mulDiv255(br, invAa)),
		clampAdd(mulDiv255(ag, ba), mulDiv255(bg, invAa)),
		clampAdd(mulDiv255(ab, ba), mulDiv255(bb, invAa)),
		ba
}

// compositeXor: Fa = 1-Ba, Fb = 1-Aa.
func compositeXor(ar, ag, ab, aa, br, bg, bb, ba uint8) (uint8, uint8, uint8, uint8) {
	invBa := 255 - ba
	invAa := 255 - aa
	return clampAdd(mulDiv255(ar, invBa), mulDiv255(br, invAa)),
		clampAdd(mulDiv255(ag, invBa), mulDiv255(bg, invAa)),
		clampAdd(mulDiv255(ab, invBa), mulDiv255(bb, invAa)),
		clampAdd(mulDiv255(aa, invBa), mulDiv255(ba, invAa))
}

// compositeLighter: Fa = 1, Fb = 1.
func compositeLighter(ar, ag, ab, aa, br, bg, bb, ba uint8) (uint8, uint8, uint8, uint8) {
	return clampAdd(ar, br), clampAdd(ag, bg), clampAdd(ab, bb), clampAdd(aa, ba)
}

// Apply combines premultiplied buffers a (top) and b (bottom) of identical
// dimensions into dst within region, parallelized across rows.
// For Arithmetic, k holds the k1..k4 coefficients.
func Apply(p *parallel.Pool, op Operator, k [4]float32, region image.Rectangle, width, height int, a, b, dst []uint8) {
	rows := iterate.Rows(region, width, height, a, b, dst)
	if len(rows) == 0 {
		return
	}

	if op == Arithmetic {
		parallel.ForSpans(p, len(rows), func(start, end int) {
			for _, row := range rows[start:end] {
				arithmeticRow(row.Pix[0], row.Pix[1], row.Pix[2], k)
			}
		})
		return
	}

	fn := Func(op)
	parallel.ForSpans(p, len(rows), func(start, end int) {
		for _, row := range rows[start:end] {
			ra, rb, rd := row.Pix[0], row.Pix[1], row.Pix[2]
			for i := 0; i+3 < len(rd); i += 4 {
				rd[i+0], rd[i+1], rd[i+2], rd[i+3] = fn(
					ra[i+0], ra[i+1], ra[i+2], ra[i+3],
					rb[i+0], rb[i+1], rb[i+2], rb[i+3])
			}
		}
	})
}

// arithmeticRow applies result = k1*A*B + k2*A + k3*B + k4 per channel,
// including alpha, on normalized [0,1] premultiplied values. The result
// alpha is clamped to [0,1] and color channels to [0, alpha], preserving
// the premultiplied invariant.
func arithmeticRow(a, b, dst []uint8, k [4]float32) {
	for i := 0; i+3 < len(dst); i += 4 {
		aa := float32(a[i+3]) / 255
		ba := float32(b[i+3]) / 255
		ra := clamp01(k[0]*aa*ba + k[1]*aa + k[2]*ba + k[3])

		for c := 0; c < 3; c++ {
			av := float32(a[i+c]) / 255
			bv := float32(b[i+c]) / 255
			rv := k[0]*av*bv + k[1]*av + k[2]*bv + k[3]
			if rv < 0 {
				rv = 0
			}
			if rv > ra {
				rv = ra
			}
			dst[i+c] = uint8(rv*255 + 0.5)
		}
		dst[i+3] = uint8(ra*255 + 0.5)
	}
}

// mulDiv255 multiplies two byte values and divides by 255 with rounding.
func mulDiv255(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// clampAdd adds two byte values with clamping to 255.
func clampAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
