package svgfx

import "github.com/gogpu/svgfx/internal/colormatrix"

// IdentityMatrix returns a ColorMatrix that passes colors through unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{Matrix: colormatrix.Identity()}
}

// Saturate returns a ColorMatrix for the saturate variant.
// s = 0 produces grayscale, s = 1 is the identity.
func Saturate(s float32) ColorMatrix {
	return ColorMatrix{Matrix: colormatrix.Saturate(s)}
}

// HueRotate returns a ColorMatrix for the hueRotate variant, with the
// angle in degrees.
func HueRotate(degrees float32) ColorMatrix {
	return ColorMatrix{Matrix: colormatrix.HueRotate(degrees)}
}

// LuminanceToAlpha returns a ColorMatrix that moves source luminance into
// the alpha channel.
func LuminanceToAlpha() ColorMatrix {
	return ColorMatrix{Matrix: colormatrix.LuminanceToAlpha()}
}
