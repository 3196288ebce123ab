// Package svgfx evaluates SVG filter primitive graphs against raster pixel
// buffers.
//
// The engine receives a parsed list of filter primitives, a SourceGraphic
// pixel buffer, the overall filter region, and a device scale, and produces
// the filtered buffer ready for compositing into the scene. Document
// parsing, CSS, layout, rasterization, and output delivery are the caller's
// concern.
//
// Basic usage:
//
//	ev := svgfx.New(image.Rect(0, 0, 256, 256), 1.0)
//	out, err := ev.Evaluate(source, []svgfx.Primitive{
//	    {Op: svgfx.Blur{StdDevX: 4, StdDevY: 4}, In: []svgfx.Input{svgfx.SourceAlpha}, Result: "shadow"},
//	    {Op: svgfx.Offset{DX: 6, DY: 6}, In: []svgfx.Input{"shadow"}},
//	    {Op: svgfx.Composite{Operator: svgfx.OpOver}, In: []svgfx.Input{svgfx.SourceGraphic, ""}},
//	})
//
// Pixel work inside each primitive is parallelized across rows of the
// filter region; the graph itself is evaluated sequentially in dependency
// order. Buffers carry explicit premultiplication and color-space tags, and
// the evaluator converts between sRGB and linear light around primitives
// according to their color-interpolation setting.
package svgfx
