// Command svgfxdemo demonstrates the svgfx filter-effects engine by
// rendering a drop shadow and an embossed variant of a simple graphic.
package main

import (
	"flag"
	"image"
	"log"
	"math"

	"github.com/gogpu/svgfx"
)

func main() {
	var (
		size   = flag.Int("size", 256, "image width and height")
		scale  = flag.Float64("scale", 1, "device scale factor")
		output = flag.String("output", "demo.png", "output file")
		emboss = flag.Bool("emboss", false, "render the lit emboss variant instead of the drop shadow")
	)
	flag.Parse()

	src := drawSource(*size)

	ev := svgfx.New(image.Rect(0, 0, *size, *size), *scale)
	defer ev.Close()

	prims := dropShadow()
	if *emboss {
		prims = embossed()
	}

	out, err := ev.Evaluate(src, prims)
	if err != nil {
		log.Fatalf("Failed to evaluate filter: %v", err)
	}
	if err := out.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, out.Width(), out.Height())
}

// drawSource rasterizes the unfiltered graphic: a solid circle with a
// smaller cut-out ring, centered in the canvas.
func drawSource(size int) *svgfx.Pixmap {
	pm := svgfx.NewPixmap(size, size)
	cx := float64(size) / 2
	cy := float64(size) / 2
	outer := float64(size) * 0.28
	inner := float64(size) * 0.12

	fill := svgfx.RGB(0.95, 0.45, 0.1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := math.Hypot(float64(x)-cx, float64(y)-cy)
			if r <= outer && r >= inner {
				pm.SetPixel(x, y, fill)
			}
		}
	}
	return pm
}

// dropShadow builds the classic shadow graph: blur the source's alpha,
// offset it, tint it, and stack the original on top.
func dropShadow() []svgfx.Primitive {
	return []svgfx.Primitive{
		{
			Op:     svgfx.Blur{StdDevX: 4, StdDevY: 4},
			In:     []svgfx.Input{svgfx.SourceAlpha},
			Result: "soft",
		},
		{
			Op:     svgfx.Offset{DX: 8, DY: 8},
			Result: "moved",
		},
		{
			Op:     svgfx.Flood{Color: svgfx.RGBA{A: 0.55}},
			Result: "paint",
		},
		{
			Op:     svgfx.Composite{Operator: svgfx.OpIn},
			In:     []svgfx.Input{"paint", "moved"},
			Result: "shadow",
		},
		{
			Op: svgfx.Merge{},
			In: []svgfx.Input{"shadow", svgfx.SourceGraphic},
		},
	}
}

// embossed lights the source's alpha surface with a specular point light
// and lays the highlight over the original.
func embossed() []svgfx.Primitive {
	return []svgfx.Primitive{
		{
			Op:     svgfx.Blur{StdDevX: 2, StdDevY: 2},
			In:     []svgfx.Input{svgfx.SourceAlpha},
			Result: "surface",
		},
		{
			Op: svgfx.SpecularLighting{
				SurfaceScale:     6,
				SpecularConstant: 0.9,
				SpecularExponent: 12,
				Color:            svgfx.RGB(1, 1, 1),
				Light:            svgfx.PointLight{X: 60, Y: 40, Z: 120},
			},
			Result: "sheen",
		},
		{
			Op:     svgfx.Composite{Operator: svgfx.OpIn},
			In:     []svgfx.Input{"sheen", svgfx.SourceAlpha},
			Result: "highlight",
		},
		{
			Op: svgfx.Merge{},
			In: []svgfx.Input{svgfx.SourceGraphic, "highlight"},
		},
	}
}
