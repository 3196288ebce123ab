package svgfx

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/svgfx/internal/colorspace"
)

// ColorSpace tags the interpretation of a pixmap's RGB channels.
type ColorSpace uint8

const (
	// SpaceSRGB marks channels encoded with the sRGB transfer function.
	SpaceSRGB ColorSpace = iota
	// SpaceLinear marks channels in linear light.
	SpaceLinear
)

// String returns a human-readable name for the color space.
func (s ColorSpace) String() string {
	switch s {
	case SpaceSRGB:
		return "sRGB"
	case SpaceLinear:
		return "LinearRGB"
	default:
		return "Unknown"
	}
}

// Pixmap is a rectangular RGBA pixel buffer with explicit premultiplication
// and color-space state. Every per-pixel operator in the engine states the
// buffer state it requires; converting state is always explicit, never
// inferred from content.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel, stride = width*4

	premultiplied bool
	space         ColorSpace
}

// NewPixmap creates a transparent-black pixmap with the given dimensions,
// tagged premultiplied sRGB. Zero or negative dimensions produce an empty
// pixmap on which all operations are no-ops.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:         width,
		height:        height,
		data:          make([]uint8, width*height*4),
		premultiplied: true,
		space:         SpaceSRGB,
	}
}

// Width returns the width of the pixmap in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap in pixels.
func (p *Pixmap) Height() int { return p.height }

// Stride returns the number of bytes per row.
func (p *Pixmap) Stride() int { return p.width * 4 }

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 { return p.data }

// Premultiplied reports whether channel values are alpha-premultiplied.
func (p *Pixmap) Premultiplied() bool { return p.premultiplied }

// Space returns the color space the RGB channels are encoded in.
func (p *Pixmap) Space() ColorSpace { return p.space }

// Region returns the pixmap bounds as a rectangle anchored at the origin.
func (p *Pixmap) Region() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// Empty reports whether the pixmap has zero area.
func (p *Pixmap) Empty() bool { return p.width == 0 || p.height == 0 }

// Clone returns a deep copy sharing no storage with p.
func (p *Pixmap) Clone() *Pixmap {
	q := *p
	q.data = make([]uint8, len(p.data))
	copy(q.data, p.data)
	return &q
}

// SetPixel sets the color of a single pixel from a straight-alpha color,
// honoring the pixmap's premultiplication state. Out-of-range coordinates
// are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	r, g, b, a := c.R, c.G, c.B, c.A
	if p.premultiplied {
		r, g, b = r*a, g*a, b*a
	}
	p.data[i+0] = clampByte(r * 255)
	p.data[i+1] = clampByte(g * 255)
	p.data[i+2] = clampByte(b * 255)
	p.data[i+3] = clampByte(a * 255)
}

// GetPixel returns the straight-alpha color of a single pixel.
// Out-of-range coordinates return transparent black.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return RGBA{}
	}
	i := (y*p.width + x) * 4
	c := RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
	if p.premultiplied && c.A > 0 {
		c.R /= c.A
		c.G /= c.A
		c.B /= c.A
	}
	return c
}

// Fill sets every pixel inside region to the given straight-alpha color.
func (p *Pixmap) Fill(region image.Rectangle, c RGBA) {
	region = region.Intersect(p.Region())
	if region.Empty() {
		return
	}
	r, g, b, a := c.R, c.G, c.B, c.A
	if p.premultiplied {
		r, g, b = r*a, g*a, b*a
	}
	br, bg, bb, ba := clampByte(r*255), clampByte(g*255), clampByte(b*255), clampByte(a*255)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		i := (y*p.width + region.Min.X) * 4
		for x := region.Min.X; x < region.Max.X; x++ {
			p.data[i+0] = br
			p.data[i+1] = bg
			p.data[i+2] = bb
			p.data[i+3] = ba
			i += 4
		}
	}
}

// ClearOutside zeroes every pixel outside region to transparent black.
// Used to clip a primitive's result to its filter region.
func (p *Pixmap) ClearOutside(region image.Rectangle) {
	region = region.Intersect(p.Region())
	if region == p.Region() {
		return
	}
	if region.Empty() {
		clear(p.data)
		return
	}
	for y := 0; y < p.height; y++ {
		if y < region.Min.Y || y >= region.Max.Y {
			clear(p.data[y*p.width*4 : (y+1)*p.width*4])
			continue
		}
		clear(p.data[y*p.width*4 : (y*p.width+region.Min.X)*4])
		clear(p.data[(y*p.width+region.Max.X)*4 : (y+1)*p.width*4])
	}
}

// ToLinear converts the RGB channels to linear light in place.
// A no-op when the pixmap is already linear or has zero area; alpha is
// never modified.
func (p *Pixmap) ToLinear() {
	if p.space == SpaceLinear || p.Empty() {
		p.space = SpaceLinear
		return
	}
	colorspace.ToLinear(p.data, p.premultiplied)
	p.space = SpaceLinear
}

// ToSRGB converts the RGB channels to sRGB encoding in place.
// A no-op when the pixmap is already sRGB or has zero area; alpha is
// never modified.
func (p *Pixmap) ToSRGB() {
	if p.space == SpaceSRGB || p.Empty() {
		p.space = SpaceSRGB
		return
	}
	colorspace.ToSRGB(p.data, p.premultiplied)
	p.space = SpaceSRGB
}

// Premultiply scales RGB channels by alpha in place. No-op when already
// premultiplied.
func (p *Pixmap) Premultiply() {
	if p.premultiplied {
		return
	}
	colorspace.Premultiply(p.data)
	p.premultiplied = true
}

// Unpremultiply divides RGB channels by alpha in place. No-op when already
// straight-alpha.
func (p *Pixmap) Unpremultiply() {
	if !p.premultiplied {
		return
	}
	colorspace.Unpremultiply(p.data)
	p.premultiplied = false
}

// ExtractAlpha returns a new pixmap holding only p's alpha channel, with
// all color channels transparent black. This is the SourceAlpha derivation.
func (p *Pixmap) ExtractAlpha() *Pixmap {
	q := NewPixmap(p.width, p.height)
	q.space = p.space
	for i := 3; i < len(p.data); i += 4 {
		q.data[i] = p.data[i]
	}
	return q
}

// Translate returns a new pixmap with p's content shifted by (dx, dy).
// Vacated areas are transparent black.
func (p *Pixmap) Translate(dx, dy int) *Pixmap {
	q := NewPixmap(p.width, p.height)
	q.premultiplied = p.premultiplied
	q.space = p.space
	for y := 0; y < p.height; y++ {
		sy := y - dy
		if sy < 0 || sy >= p.height {
			continue
		}
		// Horizontal overlap of the shifted row.
		dstMin, dstMax := dx, p.width+dx
		if dstMin < 0 {
			dstMin = 0
		}
		if dstMax > p.width {
			dstMax = p.width
		}
		if dstMin >= dstMax {
			continue
		}
		srcMin := dstMin - dx
		copy(q.data[(y*p.width+dstMin)*4:(y*p.width+dstMax)*4],
			p.data[(sy*p.width+srcMin)*4:])
	}
	return q
}

// ToImage converts the pixmap to an image.RGBA (alpha-premultiplied).
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	if p.premultiplied {
		copy(img.Pix, p.data)
		return img
	}
	copy(img.Pix, p.data)
	colorspace.Premultiply(img.Pix)
	return img
}

// ToNRGBA converts the pixmap to an image.NRGBA (straight alpha).
func (p *Pixmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	if p.premultiplied {
		colorspace.Unpremultiply(img.Pix)
	}
	return img
}

// FromImage creates a premultiplied sRGB pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	rgba := image.NewRGBA(image.Rect(0, 0, pm.width, pm.height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	copy(pm.data, rgba.Pix)
	return pm
}

// FromImageScaled creates a premultiplied sRGB pixmap from an image,
// resampled by the device scale factor. A scale of 1 is equivalent to
// FromImage; other scales use Catmull-Rom interpolation.
func FromImageScaled(img image.Image, scale float64) *Pixmap {
	if scale == 1 {
		return FromImage(img)
	}
	bounds := img.Bounds()
	w := int(float64(bounds.Dx())*scale + 0.5)
	h := int(float64(bounds.Dy())*scale + 0.5)
	pm := NewPixmap(w, h)
	if pm.Empty() {
		return pm
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	copy(pm.data, rgba.Pix)
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.ToNRGBA())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return p.Region()
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
