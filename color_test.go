package svgfx

import (
	"image/color"
	"testing"
)

func TestRGB(t *testing.T) {
	c := RGB(0.5, 0.25, 1)
	if c.A != 1 {
		t.Errorf("A = %v, want 1", c.A)
	}
	if c.R != 0.5 || c.G != 0.25 || c.B != 1 {
		t.Errorf("RGB = %v", c)
	}
}

func TestColorConversion(t *testing.T) {
	tests := []struct {
		name string
		in   RGBA
		want color.NRGBA
	}{
		{"opaque red", RGBA{R: 1, A: 1}, color.NRGBA{R: 255, A: 255}},
		{"half gray", RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{"transparent", RGBA{}, color.NRGBA{}},
		{"clamped high", RGBA{R: 2, A: 1.5}, color.NRGBA{R: 255, A: 255}},
		{"clamped low", RGBA{R: -1, A: 1}, color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Color(); got != tt.want {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	const tol = 0.005
	check := func(name string, got, want float64) {
		t.Helper()
		if d := got - want; d > tol || d < -tol {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	check("R", got.R, 200.0/255)
	check("G", got.G, 100.0/255)
	check("B", got.B, 50.0/255)
	check("A", got.A, 1)

	if got := FromColor(color.NRGBA{}); got != (RGBA{}) {
		t.Errorf("transparent FromColor = %v, want zero", got)
	}

	// Premultiplied input unpremultiplies to straight components.
	got = FromColor(color.RGBA{R: 64, A: 128})
	check("premultiplied R", got.R, 0.5)
	check("premultiplied A", got.A, 128.0/255)
}
