package svgfx

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/svgfx/internal/blur"
	"github.com/gogpu/svgfx/internal/colormatrix"
	"github.com/gogpu/svgfx/internal/colorspace"
	"github.com/gogpu/svgfx/internal/composite"
	"github.com/gogpu/svgfx/internal/lighting"
	"github.com/gogpu/svgfx/internal/parallel"
)

// Evaluator orchestrates one or more filter-graph evaluations against a
// fixed filter region and device scale. Graph nodes are evaluated
// sequentially in dependency order on the calling goroutine; the pixel work
// inside each node is split across the evaluator's worker pool with an
// implicit join before the node's result is published.
//
// An Evaluator may be reused for many Evaluate calls. Close releases the
// worker pool.
type Evaluator struct {
	region image.Rectangle
	scale  float64
	opts   evalOptions

	poolOnce sync.Once
	pool     *parallel.Pool
}

// New creates an Evaluator for the given overall filter region (in buffer
// coordinates) and device scale factor. The scale is applied to length
// parameters: blur deviations, offsets, light positions, and surface scale.
func New(region image.Rectangle, scale float64, opts ...Option) *Evaluator {
	if scale <= 0 {
		scale = 1
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Evaluator{
		region: region.Canon(),
		scale:  scale,
		opts:   o,
	}
}

// Region returns the overall filter region.
func (e *Evaluator) Region() image.Rectangle { return e.region }

// Close releases the evaluator's worker pool. The evaluator must not be
// used after Close.
func (e *Evaluator) Close() {
	e.poolOnce.Do(func() {}) // prevent later lazy creation
	if e.pool != nil {
		e.pool.Close()
	}
}

// workers returns the lazily-created worker pool.
func (e *Evaluator) workers() *parallel.Pool {
	e.poolOnce.Do(func() {
		e.pool = parallel.New(e.opts.workers)
	})
	return e.pool
}

// Input markers for the well-known sources, used in place of node indices.
const (
	inputSource = -1 - iota
	inputAlpha
	inputBackground
)

// node is one graph entry: a primitive with its input references resolved
// to node indices (or well-known markers) and, once evaluated, its
// published result.
type node struct {
	prim   *Primitive
	inputs []int

	done   bool
	result *Pixmap
}

// evaluation carries the per-call state: the result cache plus the lazily
// derived well-known inputs.
type evaluation struct {
	eval   *Evaluator
	source *Pixmap
	alpha  *Pixmap // SourceAlpha, derived on first use
	nodes  []node
}

// Evaluate runs the filter graph over the SourceGraphic buffer and returns
// the final result, dimensioned to the filter region, premultiplied, in
// sRGB. src must match the filter region's dimensions and be premultiplied.
//
// On a graph-structural failure (undefined reference or reference cycle)
// the returned error is non-nil and the returned buffer is the degraded
// fallback selected by WithFallback — never a partial result.
//
// An empty primitive list yields a copy of src.
func (e *Evaluator) Evaluate(src *Pixmap, prims []Primitive) (*Pixmap, error) {
	if src == nil || src.Width() != e.region.Dx() || src.Height() != e.region.Dy() {
		return e.fallback(src), fmt.Errorf("%w: source %dx%d, region %dx%d",
			ErrDimensionMismatch, srcWidth(src), srcHeight(src), e.region.Dx(), e.region.Dy())
	}
	if !src.Premultiplied() {
		src = src.Clone()
		src.Premultiply()
	}
	if len(prims) == 0 {
		return src.Clone(), nil
	}

	ev := &evaluation{eval: e, source: src}
	if err := ev.build(prims); err != nil {
		e.warnFallback(err)
		return e.fallbackFor(src), err
	}
	if err := ev.run(); err != nil {
		e.warnFallback(err)
		return e.fallbackFor(src), err
	}

	out := ev.nodes[len(ev.nodes)-1].result
	out.ToSRGB()
	return out, nil
}

func srcWidth(p *Pixmap) int {
	if p == nil {
		return 0
	}
	return p.Width()
}

func srcHeight(p *Pixmap) int {
	if p == nil {
		return 0
	}
	return p.Height()
}

// fallback produces the degraded output when no valid source exists.
func (e *Evaluator) fallback(src *Pixmap) *Pixmap {
	if e.opts.fallback == FallbackSourceGraphic && src != nil {
		return src.Clone()
	}
	return NewPixmap(e.region.Dx(), e.region.Dy())
}

// fallbackFor produces the degraded output for a failed evaluation.
func (e *Evaluator) fallbackFor(src *Pixmap) *Pixmap {
	if e.opts.fallback == FallbackSourceGraphic {
		return src.Clone()
	}
	return NewPixmap(e.region.Dx(), e.region.Dy())
}

func (e *Evaluator) warnFallback(err error) {
	Logger().Warn("filter evaluation failed, yielding fallback",
		slog.String("error", err.Error()),
		slog.Bool("source_graphic_fallback", e.opts.fallback == FallbackSourceGraphic))
}

// build resolves every primitive's named inputs to node indices.
// References resolve to the nearest preceding producer of the name, or the
// nearest following one (the graph is a DAG, not a chain, so forward
// references are legal as long as evaluation order can satisfy them).
// A name nobody produces is an immediate ErrInvalidReference.
func (ev *evaluation) build(prims []Primitive) error {
	producers := make(map[string][]int)
	for i := range prims {
		if name := prims[i].Result; name != "" {
			producers[name] = append(producers[name], i)
		}
	}

	ev.nodes = make([]node, len(prims))
	for i := range prims {
		p := &prims[i]
		inputs, err := ev.resolveInputs(i, p, producers)
		if err != nil {
			return err
		}
		ev.nodes[i] = node{prim: p, inputs: inputs}
	}
	return nil
}

// resolveInputs maps the primitive's declared inputs to node indices,
// padding with implicit references up to the operator's arity.
func (ev *evaluation) resolveInputs(idx int, p *Primitive, producers map[string][]int) ([]int, error) {
	want := p.Op.arity()
	names := p.In
	if want >= 0 {
		if len(names) > want {
			names = names[:want]
		}
		for len(names) < want {
			names = append(names, "")
		}
	} else if len(names) == 0 {
		names = []Input{""}
	}

	inputs := make([]int, len(names))
	for j, name := range names {
		ref, err := resolveInput(idx, name, producers)
		if err != nil {
			return nil, err
		}
		inputs[j] = ref
	}
	return inputs, nil
}

func resolveInput(idx int, name Input, producers map[string][]int) (int, error) {
	switch name {
	case "":
		if idx == 0 {
			return inputSource, nil
		}
		return idx - 1, nil
	case SourceGraphic:
		return inputSource, nil
	case SourceAlpha:
		return inputAlpha, nil
	case BackgroundImage:
		return inputBackground, nil
	}

	prods := producers[string(name)]
	if len(prods) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReference, string(name))
	}
	// Nearest preceding producer wins; otherwise the nearest following one.
	best := -1
	for _, pi := range prods {
		if pi < idx {
			best = pi
		}
	}
	if best >= 0 {
		return best, nil
	}
	for _, pi := range prods {
		if pi != idx {
			return pi, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrCycle, string(name))
}

// run walks the node array topologically: each sweep evaluates every node
// whose inputs are all available. A sweep with no progress while nodes
// remain means the remaining references form a cycle.
func (ev *evaluation) run() error {
	remaining := len(ev.nodes)
	for remaining > 0 {
		progress := false
		for i := range ev.nodes {
			n := &ev.nodes[i]
			if n.done || !ev.ready(n) {
				continue
			}
			if err := ev.evalNode(n); err != nil {
				return err
			}
			n.done = true
			remaining--
			progress = true
		}
		if !progress {
			return fmt.Errorf("%w: %d unevaluated primitives", ErrCycle, remaining)
		}
	}
	return nil
}

// ready reports whether all of a node's inputs are available.
func (ev *evaluation) ready(n *node) bool {
	for _, ref := range n.inputs {
		if ref >= 0 && !ev.nodes[ref].done {
			return false
		}
	}
	return true
}

// operatingSpace returns the color space a primitive's pixel math runs in.
func operatingSpace(p *Primitive) ColorSpace {
	if p.Interp == InterpSRGB {
		return SpaceSRGB
	}
	return SpaceLinear
}

// nodeRegion returns the node's filter region translated to buffer index
// space: the declared subregion intersected with the overall filter region.
func (ev *evaluation) nodeRegion(p *Primitive) image.Rectangle {
	full := image.Rect(0, 0, ev.eval.region.Dx(), ev.eval.region.Dy())
	if p.Subregion == nil {
		return full
	}
	sub := p.Subregion.Canon().Intersect(ev.eval.region)
	return sub.Sub(ev.eval.region.Min).Intersect(full)
}

// inputBuffer returns the pixmap for one resolved input reference.
// Published results are immutable; callers clone before mutating.
func (ev *evaluation) inputBuffer(ref int) *Pixmap {
	switch ref {
	case inputSource:
		return ev.source
	case inputAlpha:
		if ev.alpha == nil {
			ev.alpha = ev.source.ExtractAlpha()
		}
		return ev.alpha
	case inputBackground:
		if bg := ev.eval.opts.background; bg != nil {
			return bg
		}
		Logger().Debug("BackgroundImage not supplied, using transparent black")
		return NewPixmap(ev.eval.region.Dx(), ev.eval.region.Dy())
	default:
		return ev.nodes[ref].result
	}
}

// inputInSpace returns the input buffer converted to the target space,
// cloning when a published buffer would otherwise be mutated.
func (ev *evaluation) inputInSpace(ref int, space ColorSpace) *Pixmap {
	buf := ev.inputBuffer(ref)
	if buf.Space() == space {
		return buf
	}
	buf = buf.Clone()
	if space == SpaceLinear {
		buf.ToLinear()
	} else {
		buf.ToSRGB()
	}
	return buf
}

// evalNode dispatches one primitive to its operator, clips the result to
// the node's region, and publishes it.
func (ev *evaluation) evalNode(n *node) error {
	start := time.Now()

	region := ev.nodeRegion(n.prim)
	space := operatingSpace(n.prim)

	out, err := ev.dispatch(n, region, space)
	if err != nil {
		return err
	}

	out.ClearOutside(region)
	n.result = out

	Logger().Debug("evaluated filter primitive",
		slog.String("kind", n.prim.Op.Kind().String()),
		slog.String("result", n.prim.Result),
		slog.String("space", out.Space().String()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// dispatch runs the operator for one node. The operator set is closed; an
// Op outside it is a programming error.
func (ev *evaluation) dispatch(n *node, region image.Rectangle, space ColorSpace) (*Pixmap, error) {
	e := ev.eval
	w, h := e.region.Dx(), e.region.Dy()

	switch op := n.prim.Op.(type) {
	case Blur:
		out := ev.inputInSpace(n.inputs[0], space).Clone()
		blur.Apply(e.workers(), out.Data(), w, h, op.StdDevX*e.scale, op.StdDevY*e.scale)
		return out, nil

	case Offset:
		// Offset is color-space agnostic: it moves samples without
		// touching their values, so the input's space is kept.
		in := ev.inputBuffer(n.inputs[0])
		dx := int(roundHalf(op.DX * e.scale))
		dy := int(roundHalf(op.DY * e.scale))
		return in.Translate(dx, dy), nil

	case Flood:
		out := NewPixmap(w, h)
		out.Fill(region, op.Color)
		if space == SpaceLinear {
			out.ToLinear()
		}
		return out, nil

	case Merge:
		out := NewPixmap(w, h)
		if space == SpaceLinear {
			out.ToLinear()
		}
		for _, ref := range n.inputs {
			in := ev.inputInSpace(ref, space)
			composite.Apply(e.workers(), composite.Over, [4]float32{},
				out.Region(), w, h, in.Data(), out.Data(), out.Data())
		}
		return out, nil

	case Composite:
		a := ev.inputInSpace(n.inputs[0], space)
		b := ev.inputInSpace(n.inputs[1], space)
		out := NewPixmap(w, h)
		if space == SpaceLinear {
			out.ToLinear()
		}
		k := [4]float32{float32(op.K1), float32(op.K2), float32(op.K3), float32(op.K4)}
		composite.Apply(e.workers(), compositeOperator(op.Operator), k,
			region, w, h, a.Data(), b.Data(), out.Data())
		return out, nil

	case ColorMatrix:
		out := ev.inputInSpace(n.inputs[0], space).Clone()
		colormatrix.Apply(e.workers(), colormatrix.Matrix(op.Matrix), region, w, h, out.Data())
		return out, nil

	case DiffuseLighting:
		cfg := lighting.Config{
			Mode:         lighting.Diffuse,
			Source:       op.Light.toInternal(e.scale),
			SurfaceScale: float32(op.SurfaceScale * e.scale),
			Constant:     float32(op.DiffuseConstant),
			Color:        lightColor(op.Color, space),
		}
		return ev.applyLighting(cfg, n, region, space)

	case SpecularLighting:
		cfg := lighting.Config{
			Mode:         lighting.Specular,
			Source:       op.Light.toInternal(e.scale),
			SurfaceScale: float32(op.SurfaceScale * e.scale),
			Constant:     float32(op.SpecularConstant),
			Exponent:     float32(op.SpecularExponent),
			Color:        lightColor(op.Color, space),
		}
		return ev.applyLighting(cfg, n, region, space)

	default:
		return nil, fmt.Errorf("svgfx: unhandled primitive kind %v", n.prim.Op.Kind())
	}
}

// applyLighting runs a lighting config against a node's input. Only the
// input's alpha channel is read, so no color-space conversion is needed on
// the way in; the output is produced directly in the operating space.
func (ev *evaluation) applyLighting(cfg lighting.Config, n *node, region image.Rectangle, space ColorSpace) (*Pixmap, error) {
	e := ev.eval
	w, h := e.region.Dx(), e.region.Dy()

	if cfg.Source == nil {
		// A lighting primitive without a light source renders black.
		cfg.Source = lighting.Distant{}
		cfg.Constant = 0
	}

	in := ev.inputBuffer(n.inputs[0])
	out := NewPixmap(w, h)
	if space == SpaceLinear {
		out.ToLinear()
	}
	lighting.Apply(e.workers(), cfg, region, w, h, in.Data(), out.Data())
	return out, nil
}

// compositeOperator maps the public operator to the kernel's enum.
func compositeOperator(op CompositeOp) composite.Operator {
	switch op {
	case OpIn:
		return composite.In
	case OpOut:
		return composite.Out
	case OpAtop:
		return composite.Atop
	case OpXor:
		return composite.Xor
	case OpLighter:
		return composite.Lighter
	case OpArithmetic:
		return composite.Arithmetic
	default:
		return composite.Over
	}
}

// lightColor converts a straight sRGB light color to the operating space.
func lightColor(c RGBA, space ColorSpace) [3]float32 {
	r := clampByte(c.R * 255)
	g := clampByte(c.G * 255)
	b := clampByte(c.B * 255)
	if space == SpaceLinear {
		return [3]float32{
			colorspace.SRGBToLinearFast(r),
			colorspace.SRGBToLinearFast(g),
			colorspace.SRGBToLinearFast(b),
		}
	}
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// roundHalf rounds to the nearest integer, halves away from zero.
func roundHalf(v float64) float64 {
	if v < 0 {
		return float64(int(v - 0.5))
	}
	return float64(int(v + 0.5))
}
