package svgfx

import "image/color"

// RGBA represents a straight-alpha color with components in [0, 1].
// Used for flood colors and light colors.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: clampByte(c.R * 255),
		G: clampByte(c.G * 255),
		B: clampByte(c.B * 255),
		A: clampByte(c.A * 255),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGBA{}
	}
	// c.RGBA returns premultiplied 16-bit components; RGBA is straight.
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

// clampByte clamps v to [0, 255] and rounds to a byte.
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
