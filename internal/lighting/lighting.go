package lighting

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/svgfx/internal/iterate"
	"github.com/gogpu/svgfx/internal/parallel"
)

// Mode selects the lighting model.
type Mode uint8

const (
	// Diffuse produces kd * (N·L) * lightColor with a fully opaque result.
	Diffuse Mode = iota
	// Specular produces ks * (N·H)^exponent * lightColor with alpha set to
	// the maximum color channel.
	Specular
)

// Config holds the parameters of one lighting primitive.
type Config struct {
	Mode   Mode
	Source Source

	// SurfaceScale maps alpha [0,1] to surface height.
	SurfaceScale float32

	// Constant is the diffuse (kd) or specular (ks) lighting constant.
	Constant float32

	// Exponent is the specular exponent. Unused for Diffuse.
	Exponent float32

	// Color is the light color in linear RGB, each channel in [0,1].
	Color [3]float32
}

// Apply evaluates the lighting model over region, reading the alpha channel
// of src and writing premultiplied results to dst. src and dst must have
// identical dimensions and must not alias: normal estimation reads rows
// adjacent to the one being written.
func Apply(p *parallel.Pool, cfg Config, region image.Rectangle, width, height int, src, dst []uint8) {
	rows := iterate.Rows(region, width, height, dst)
	if len(rows) == 0 {
		return
	}

	parallel.ForSpans(p, len(rows), func(start, end int) {
		for _, row := range rows[start:end] {
			lightRow(cfg, row, src, width, height)
		}
	})
}

func lightRow(cfg Config, row iterate.Row, src []uint8, width, height int) {
	out := row.Pix[0]
	for x := row.MinX; x < row.MaxX; x++ {
		i := (x - row.MinX) * 4

		alpha := float32(src[(row.Y*width+x)*4+3]) / 255
		nx, ny, nz := normalAt(src, width, height, x, row.Y, cfg.SurfaceScale)

		z := cfg.SurfaceScale * alpha
		lx, ly, lz, intensity := cfg.Source.at(float32(x), float32(row.Y), z)

		switch cfg.Mode {
		case Specular:
			// Half-vector between light and viewer; the viewer is at +Z.
			hx, hy, hz := normalize3(lx, ly, lz+1)
			nh := nx*hx + ny*hy + nz*hz
			if nh < 0 {
				nh = 0
			}
			factor := cfg.Constant * math32.Pow(nh, cfg.Exponent) * intensity

			r := clamp01(factor * cfg.Color[0])
			g := clamp01(factor * cfg.Color[1])
			b := clamp01(factor * cfg.Color[2])
			a := max3(r, g, b)

			// Channels never exceed the max-channel alpha, so the result
			// is a valid premultiplied pixel as stored.
			out[i+0] = uint8(r*255 + 0.5)
			out[i+1] = uint8(g*255 + 0.5)
			out[i+2] = uint8(b*255 + 0.5)
			out[i+3] = uint8(a*255 + 0.5)

		default:
			nl := nx*lx + ny*ly + nz*lz
			if nl < 0 {
				nl = 0
			}
			factor := cfg.Constant * nl * intensity

			out[i+0] = uint8(clamp01(factor*cfg.Color[0])*255 + 0.5)
			out[i+1] = uint8(clamp01(factor*cfg.Color[1])*255 + 0.5)
			out[i+2] = uint8(clamp01(factor*cfg.Color[2])*255 + 0.5)
			out[i+3] = 255
		}
	}
}

func clamp01(v float32) float32 {
	if v != v || v < 0 { // NaN guards to zero
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
