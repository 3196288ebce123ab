package svgfx

import "image"

// Input names one input of a filter primitive: either the result name of an
// earlier primitive or one of the well-known inputs. The empty Input refers
// to the result of the preceding primitive in document order, or
// SourceGraphic for the first primitive.
type Input string

// Well-known inputs supplied by the surrounding renderer.
const (
	// SourceGraphic is the rasterized element the filter applies to.
	SourceGraphic Input = "SourceGraphic"

	// SourceAlpha is SourceGraphic's alpha channel with black color
	// channels, derived lazily once per evaluation.
	SourceAlpha Input = "SourceAlpha"

	// BackgroundImage is the scene behind the filtered element, supplied
	// via WithBackground; transparent black when absent.
	BackgroundImage Input = "BackgroundImage"
)

// wellKnown reports whether the input is one of the predefined sources.
func (in Input) wellKnown() bool {
	switch in {
	case SourceGraphic, SourceAlpha, BackgroundImage:
		return true
	default:
		return false
	}
}

// Interpolation selects the color space a primitive's pixel math runs in.
type Interpolation uint8

const (
	// InterpAuto uses the filter model's default, linear RGB.
	InterpAuto Interpolation = iota
	// InterpLinear forces linear-RGB operation.
	InterpLinear
	// InterpSRGB forces sRGB operation.
	InterpSRGB
)

// Kind identifies a primitive operator.
type Kind uint8

const (
	KindBlur Kind = iota
	KindOffset
	KindFlood
	KindMerge
	KindComposite
	KindColorMatrix
	KindDiffuseLighting
	KindSpecularLighting
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBlur:
		return "Blur"
	case KindOffset:
		return "Offset"
	case KindFlood:
		return "Flood"
	case KindMerge:
		return "Merge"
	case KindComposite:
		return "Composite"
	case KindColorMatrix:
		return "ColorMatrix"
	case KindDiffuseLighting:
		return "DiffuseLighting"
	case KindSpecularLighting:
		return "SpecularLighting"
	default:
		return "Unknown"
	}
}

// Op is the closed set of primitive operators. Implementations are Blur,
// Offset, Flood, Merge, Composite, ColorMatrix, DiffuseLighting, and
// SpecularLighting; the evaluator matches exhaustively over these.
type Op interface {
	// Kind identifies the operator variant.
	Kind() Kind

	// arity returns the number of inputs the operator consumes;
	// variadic operators return -1.
	arity() int
}

// Primitive is one node of the filter graph: an operator with its named
// inputs, optional result name, optional declared subregion, and color
// interpolation setting. Primitives are immutable during evaluation.
type Primitive struct {
	// Op holds the operator variant and its parameters.
	Op Op

	// In lists the operator's inputs. Missing or empty entries refer to
	// the preceding primitive's result (SourceGraphic for the first node).
	In []Input

	// Result optionally names this primitive's output for later reference.
	Result string

	// Subregion optionally restricts the area this primitive may affect,
	// in buffer coordinates. It is intersected with the overall filter
	// region; content outside is transparent black.
	Subregion *image.Rectangle

	// Interp selects the color space the operator runs in.
	Interp Interpolation
}

// Blur approximates a Gaussian blur with per-axis standard deviations,
// in user units. A zero deviation skips that axis.
type Blur struct {
	StdDevX float64
	StdDevY float64
}

func (Blur) Kind() Kind { return KindBlur }
func (Blur) arity() int { return 1 }

// Offset shifts its input by (DX, DY) user units; vacated areas become
// transparent black.
type Offset struct {
	DX float64
	DY float64
}

func (Offset) Kind() Kind { return KindOffset }
func (Offset) arity() int { return 1 }

// Flood fills the primitive's region with a solid color.
type Flood struct {
	// Color is the flood color with its opacity in A, as sRGB values.
	Color RGBA
}

func (Flood) Kind() Kind { return KindFlood }
func (Flood) arity() int { return 0 }

// Merge composites all of its inputs in order with the Over operator,
// first input at the bottom.
type Merge struct{}

func (Merge) Kind() Kind { return KindMerge }
func (Merge) arity() int { return -1 }

// CompositeOp selects the compositing rule for a Composite primitive.
type CompositeOp uint8

const (
	// OpOver composites the first input over the second.
	OpOver CompositeOp = iota
	// OpIn keeps the first input where the second is opaque.
	OpIn
	// OpOut keeps the first input where the second is transparent.
	OpOut
	// OpAtop keeps the first input inside the second, and the second elsewhere.
	OpAtop
	// OpXor keeps each input where the other is absent.
	OpXor
	// OpLighter sums both inputs.
	OpLighter
	// OpArithmetic computes k1*A*B + k2*A + k3*B + k4 per premultiplied
	// channel, clamped to the valid premultiplied range.
	OpArithmetic
)

// Composite combines two inputs, the first on top of the second.
type Composite struct {
	Operator CompositeOp

	// K1..K4 are the coefficients for OpArithmetic; ignored otherwise.
	K1, K2, K3, K4 float64
}

func (Composite) Kind() Kind { return KindComposite }
func (Composite) arity() int { return 2 }

// ColorMatrix transforms straight-alpha channel values by a 4x5 matrix in
// row-major order, with the fifth column as bias. Use the Saturate,
// HueRotate, and LuminanceToAlpha helpers for the derived forms.
type ColorMatrix struct {
	Matrix [20]float32
}

func (ColorMatrix) Kind() Kind { return KindColorMatrix }
func (ColorMatrix) arity() int { return 1 }

// DiffuseLighting lights the input's alpha surface with a diffuse-only
// Phong model, producing an opaque result.
type DiffuseLighting struct {
	SurfaceScale    float64
	DiffuseConstant float64
	Color           RGBA
	Light           LightSource
}

func (DiffuseLighting) Kind() Kind { return KindDiffuseLighting }
func (DiffuseLighting) arity() int { return 1 }

// SpecularLighting lights the input's alpha surface with a specular Phong
// model; the result's alpha is the maximum color channel so downstream
// compositing has a usable alpha.
type SpecularLighting struct {
	SurfaceScale     float64
	SpecularConstant float64
	SpecularExponent float64
	Color            RGBA
	Light            LightSource
}

func (SpecularLighting) Kind() Kind { return KindSpecularLighting }
func (SpecularLighting) arity() int { return 1 }
