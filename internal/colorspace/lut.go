// Package colorspace provides sRGB ↔ linear-RGB conversion for pixel buffers
// using precomputed lookup tables.
//
// The lookup tables (LUT) provide O(1) conversions, replacing expensive
// math.Pow calls with simple array lookups. Filter primitives that operate
// in linear light (lighting, compositing, blur per the SVG filter model)
// convert their inputs through this package before running.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
//   - SVG 1.1 Filter Effects, color-interpolation-filters
package colorspace

import "math"

// sRGBToLinearLUT provides O(1) sRGB to Linear conversion.
// Pre-computed 256 entries. Converts sRGB byte [0-255] → Linear float32 [0.0-1.0].
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT provides O(1) Linear to sRGB conversion.
// Uses 4096 entries for 12-bit precision (sufficient for 8-bit sRGB).
var linearToSRGBLUT [4096]uint8

// srgbToLinearByteLUT maps an sRGB byte directly to a linear byte.
// Used by the byte-level buffer conversions where intermediate float
// precision is not needed.
var srgbToLinearByteLUT [256]uint8

// linearToSRGBByteLUT is the inverse byte-level table.
var linearToSRGBByteLUT [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		s := float64(i) / 255.0
		var linear float64
		if s <= 0.04045 {
			linear = s / 12.92
		} else {
			linear = math.Pow((s+0.055)/1.055, 2.4)
		}
		sRGBToLinearLUT[i] = float32(linear)
		srgbToLinearByteLUT[i] = roundByte(linear * 255.0)
	}

	for i := 0; i < 4096; i++ {
		linear := float64(i) / 4095.0
		linearToSRGBLUT[i] = roundByte(linearToSRGBFloat(linear) * 255.0)
	}

	for i := 0; i < 256; i++ {
		linear := float64(i) / 255.0
		linearToSRGBByteLUT[i] = roundByte(linearToSRGBFloat(linear) * 255.0)
	}
}

// linearToSRGBFloat is the sRGB OETF on [0,1] values.
func linearToSRGBFloat(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// roundByte clamps v to [0,255] and rounds to the nearest byte.
func roundByte(v float64) uint8 {
	i := int(v + 0.5)
	if i < 0 {
		i = 0
	}
	if i > 255 {
		i = 255
	}
	//nolint:gosec // G115: i is clamped to [0,255] range
	return uint8(i)
}

// SRGBToLinearFast converts an sRGB byte to a linear float32 using the
// lookup table. This is ~20x faster than computing with math.Pow per pixel.
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear float32 to an sRGB byte using the
// lookup table. Input is clamped to [0.0, 1.0].
func LinearToSRGBFast(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}

// SRGBToLinearByte converts an sRGB byte to a linear byte.
func SRGBToLinearByte(s uint8) uint8 {
	return srgbToLinearByteLUT[s]
}

// LinearToSRGBByte converts a linear byte to an sRGB byte.
func LinearToSRGBByte(l uint8) uint8 {
	return linearToSRGBByteLUT[l]
}

// SRGBToLinearSlow converts an sRGB byte to linear float32 using math.Pow.
//
// This is the reference implementation, ~20x slower than the LUT version.
// Used for testing and verification only.
func SRGBToLinearSlow(s uint8) float32 {
	sf := float64(s) / 255.0
	var linear float64
	if sf <= 0.04045 {
		linear = sf / 12.92
	} else {
		linear = math.Pow((sf+0.055)/1.055, 2.4)
	}
	return float32(linear)
}

// LinearToSRGBSlow converts a linear float32 to an sRGB byte using math.Pow.
//
// This is the reference implementation. Used for testing and verification only.
func LinearToSRGBSlow(l float32) uint8 {
	lf := float64(l)
	if lf < 0 {
		lf = 0
	}
	if lf > 1 {
		lf = 1
	}
	return roundByte(linearToSRGBFloat(lf) * 255.0)
}
