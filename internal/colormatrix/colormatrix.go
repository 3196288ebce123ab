// Package colormatrix applies a 4x5 color transformation matrix to a
// buffer, covering the feColorMatrix variants: an explicit matrix,
// saturate, hueRotate, and luminanceToAlpha.
//
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias values. Matrix coefficients assume
// straight-alpha channel values in [0,1]; Apply un-premultiplies, applies
// the matrix, clamps, and re-premultiplies.
package colormatrix

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/svgfx/internal/iterate"
	"github.com/gogpu/svgfx/internal/parallel"
)

// Luminance weights from the SVG filter specification.
const (
	lumR = 0.2125
	lumG = 0.7154
	lumB = 0.0721
)

// Matrix is a 4x5 color transformation in row-major order.
// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A).
type Matrix [20]float32

// Identity returns the matrix that passes colors through unchanged.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Saturate returns the saturation matrix for factor s.
// s = 0 produces grayscale, s = 1 is the identity.
func Saturate(s float32) Matrix {
	inv := 1 - s
	return Matrix{
		lumR*inv + s, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + s, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// HueRotate returns the hue rotation matrix for an angle in degrees.
func HueRotate(degrees float32) Matrix {
	rad := degrees * (math32.Pi / 180)
	cos := math32.Cos(rad)
	sin := math32.Sin(rad)

	return Matrix{
		lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0, 0,
		lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0, 0,
		lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// LuminanceToAlpha returns the matrix that moves source luminance into the
// alpha channel, with all color channels zeroed.
func LuminanceToAlpha() Matrix {
	return Matrix{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		lumR, lumG, lumB, 0, 0,
	}
}

// Apply transforms premultiplied RGBA samples in place within region,
// parallelized across rows.
func Apply(p *parallel.Pool, m Matrix, region image.Rectangle, width, height int, data []uint8) {
	rows := iterate.Rows(region, width, height, data)
	if len(rows) == 0 {
		return
	}

	parallel.ForSpans(p, len(rows), func(start, end int) {
		for _, row := range rows[start:end] {
			applyRow(&m, row.Pix[0])
		}
	})
}

func applyRow(m *Matrix, pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := float32(pix[i+3]) / 255

		// Un-premultiply to the straight-alpha values the matrix expects.
		var r, g, b float32
		if a > 0 {
			r = float32(pix[i+0]) / 255 / a
			g = float32(pix[i+1]) / 255 / a
			b = float32(pix[i+2]) / 255 / a
		}

		nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
		ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
		nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
		na := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

		na = clamp01(na)
		nr = clamp01(nr) * na
		ng = clamp01(ng) * na
		nb = clamp01(nb) * na

		pix[i+0] = uint8(nr*255 + 0.5)
		pix[i+1] = uint8(ng*255 + 0.5)
		pix[i+2] = uint8(nb*255 + 0.5)
		pix[i+3] = uint8(na*255 + 0.5)
	}
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
