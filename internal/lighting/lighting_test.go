package lighting

import (
	"image"
	"testing"

	"github.com/chewxy/math32"

	"github.com/gogpu/svgfx/internal/parallel"
)

// flatBuffer returns a w x h buffer with constant alpha.
func flatBuffer(w, h int, alpha uint8) []uint8 {
	buf := make([]uint8, w*h*4)
	for i := 3; i < len(buf); i += 4 {
		buf[i] = alpha
	}
	return buf
}

func TestNormalFlatSurfaceIsPlusZ(t *testing.T) {
	// The edge and corner kernels sum weighted float32 terms sequentially,
	// so a constant surface cancels only to within rounding.
	const eps = 1e-6
	const w, h = 8, 8
	buf := flatBuffer(w, h, 200)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx, ny, nz := normalAt(buf, w, h, x, y, 4)
			if nx > eps || nx < -eps || ny > eps || ny < -eps || nz < 1-eps {
				t.Fatalf("normal at (%d,%d) = (%v,%v,%v), want (0,0,1)", x, y, nx, ny, nz)
			}
		}
	}
}

func TestNormalGradientPointsUphill(t *testing.T) {
	// Alpha ramp rising to the right. The surface tilts, so the normal's x
	// component must point away from the rise (negative gradient).
	const w, h = 8, 8
	buf := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[(y*w+x)*4+3] = uint8(x * 30)
		}
	}

	nx, ny, nz := normalAt(buf, w, h, 4, 4, 4)
	if nx >= 0 {
		t.Errorf("nx = %v, want negative for rightward ramp", nx)
	}
	if ny > 0.001 || ny < -0.001 {
		t.Errorf("ny = %v, want ~0 for horizontal ramp", ny)
	}
	if nz <= 0 {
		t.Errorf("nz = %v, want positive", nz)
	}

	// Unit length.
	length := math32.Sqrt(nx*nx + ny*ny + nz*nz)
	if length < 0.999 || length > 1.001 {
		t.Errorf("|N| = %v, want 1", length)
	}
}

func TestNormalDegenerateBufferIsPlusZ(t *testing.T) {
	buf := flatBuffer(1, 1, 255)
	nx, ny, nz := normalAt(buf, 1, 1, 0, 0, 10)
	if nx != 0 || ny != 0 || nz != 1 {
		t.Errorf("normal = (%v,%v,%v), want (0,0,1)", nx, ny, nz)
	}
}

func TestPositionOf(t *testing.T) {
	const w, h = 5, 4
	tests := []struct {
		x, y int
		want position
	}{
		{0, 0, topLeft},
		{4, 0, topRight},
		{0, 3, bottomLeft},
		{4, 3, bottomRight},
		{2, 0, topEdge},
		{2, 3, bottomEdge},
		{0, 2, leftEdge},
		{4, 2, rightEdge},
		{2, 2, interior},
	}
	for _, tt := range tests {
		if got := positionOf(tt.x, tt.y, w, h); got != tt.want {
			t.Errorf("positionOf(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDistantLightVector(t *testing.T) {
	// Elevation 90: light straight overhead, L = (0, 0, 1).
	lx, ly, lz, intensity := Distant{Azimuth: 0, Elevation: 90}.at(3, 4, 0)
	if lz < 0.999 {
		t.Errorf("lz = %v, want ~1", lz)
	}
	if lx > 0.001 || lx < -0.001 || ly > 0.001 || ly < -0.001 {
		t.Errorf("lx,ly = %v,%v, want ~0", lx, ly)
	}
	if intensity != 1 {
		t.Errorf("intensity = %v, want 1", intensity)
	}
}

func TestPointLightVector(t *testing.T) {
	// Light directly above the surface point.
	lx, ly, lz, _ := Point{X: 2, Y: 3, Z: 10}.at(2, 3, 0)
	if lz < 0.999 {
		t.Errorf("lz = %v, want ~1", lz)
	}
	if lx != 0 || ly != 0 {
		t.Errorf("lx,ly = %v,%v, want 0,0", lx, ly)
	}
}

func TestSpotLightConeCutoff(t *testing.T) {
	spot := Spot{
		X: 0, Y: 0, Z: 10,
		PointsAtX: 0, PointsAtY: 0, PointsAtZ: 0,
		SpecularExponent: 1,
		ConeAngle:        10,
		HasCone:          true,
	}

	// Directly under the light: inside the cone.
	_, _, _, inside := spot.at(0, 0, 0)
	if inside <= 0 {
		t.Errorf("intensity under spot = %v, want > 0", inside)
	}

	// Far off-axis: outside the 10 degree cone.
	_, _, _, outside := spot.at(100, 0, 0)
	if outside != 0 {
		t.Errorf("intensity outside cone = %v, want 0", outside)
	}
}

func TestSpotLightBehindTargetIsDark(t *testing.T) {
	spot := Spot{
		X: 0, Y: 0, Z: 10,
		PointsAtX: 0, PointsAtY: 0, PointsAtZ: 20,
		SpecularExponent: 1,
	}
	// The spot aims away from the surface; nothing is lit.
	_, _, _, intensity := spot.at(0, 0, 0)
	if intensity != 0 {
		t.Errorf("intensity = %v, want 0", intensity)
	}
}

func TestDiffuseFlatSurfaceOverheadLight(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	const w, h = 6, 6
	src := flatBuffer(w, h, 255)
	dst := make([]uint8, w*h*4)

	cfg := Config{
		Mode:         Diffuse,
		Source:       Distant{Azimuth: 0, Elevation: 90},
		SurfaceScale: 1,
		Constant:     1,
		Color:        [3]float32{1, 0.5, 0.25},
	}
	Apply(pool, cfg, image.Rect(0, 0, w, h), w, h, src, dst)

	// Flat surface, overhead light: N·L = 1, so the result is exactly
	// kd * lightColor, fully opaque.
	want := []uint8{255, 128, 64, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			for c := 0; c < 4; c++ {
				diff := int(dst[i+c]) - int(want[c])
				if diff > 1 || diff < -1 {
					t.Fatalf("pixel (%d,%d) channel %d = %d, want %d", x, y, c, dst[i+c], want[c])
				}
			}
		}
	}
}

func TestDiffuseGrazingLightIsDark(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	const w, h = 4, 4
	src := flatBuffer(w, h, 255)
	dst := make([]uint8, w*h*4)

	cfg := Config{
		Mode:         Diffuse,
		Source:       Distant{Azimuth: 0, Elevation: 0},
		SurfaceScale: 1,
		Constant:     1,
		Color:        [3]float32{1, 1, 1},
	}
	Apply(pool, cfg, image.Rect(0, 0, w, h), w, h, src, dst)

	// Light parallel to a flat surface: N·L = 0 everywhere.
	i := (1*w + 1) * 4
	if dst[i] != 0 || dst[i+1] != 0 || dst[i+2] != 0 {
		t.Errorf("grazing light produced color %v, want black", dst[i:i+3])
	}
	if dst[i+3] != 255 {
		t.Errorf("alpha = %d, want 255 (diffuse output is opaque)", dst[i+3])
	}
}

func TestSpecularAlphaIsMaxChannel(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	const w, h = 4, 4
	src := flatBuffer(w, h, 255)
	dst := make([]uint8, w*h*4)

	cfg := Config{
		Mode:         Specular,
		Source:       Distant{Azimuth: 0, Elevation: 90},
		SurfaceScale: 1,
		Constant:     1,
		Exponent:     4,
		Color:        [3]float32{0.8, 0.6, 0.2},
	}
	Apply(pool, cfg, image.Rect(0, 0, w, h), w, h, src, dst)

	i := (2*w + 2) * 4
	maxc := dst[i]
	if dst[i+1] > maxc {
		maxc = dst[i+1]
	}
	if dst[i+2] > maxc {
		maxc = dst[i+2]
	}
	if dst[i+3] != maxc {
		t.Errorf("alpha = %d, want max channel %d", dst[i+3], maxc)
	}
	// Valid premultiplied pixel: channels never exceed alpha.
	for c := 0; c < 3; c++ {
		if dst[i+c] > dst[i+3] {
			t.Errorf("channel %d = %d exceeds alpha %d", c, dst[i+c], dst[i+3])
		}
	}
}

func TestSpecularConstantScales(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	const w, h = 4, 4
	src := flatBuffer(w, h, 255)
	dim := make([]uint8, w*h*4)
	bright := make([]uint8, w*h*4)

	cfg := Config{
		Mode:         Specular,
		Source:       Distant{Azimuth: 0, Elevation: 90},
		SurfaceScale: 1,
		Constant:     0.25,
		Exponent:     1,
		Color:        [3]float32{1, 1, 1},
	}
	Apply(pool, cfg, image.Rect(0, 0, w, h), w, h, src, dim)

	cfg.Constant = 1
	Apply(pool, cfg, image.Rect(0, 0, w, h), w, h, src, bright)

	i := (1*w + 1) * 4
	if dim[i] >= bright[i] {
		t.Errorf("ks=0.25 gives %d, ks=1 gives %d; want dimmer", dim[i], bright[i])
	}
}

func TestApplyParallelMatchesSerial(t *testing.T) {
	const w, h = 32, 32
	src := make([]uint8, w*h*4)
	for i := 3; i < len(src); i += 4 {
		src[i] = uint8((i * 7) % 256)
	}

	cfg := Config{
		Mode:         Specular,
		Source:       Point{X: 16, Y: 16, Z: 20},
		SurfaceScale: 5,
		Constant:     1,
		Exponent:     8,
		Color:        [3]float32{1, 1, 1},
	}

	d1 := make([]uint8, len(src))
	d2 := make([]uint8, len(src))

	p1 := parallel.New(1)
	defer p1.Close()
	p4 := parallel.New(4)
	defer p4.Close()

	Apply(p1, cfg, image.Rect(0, 0, w, h), w, h, src, d1)
	Apply(p4, cfg, image.Rect(0, 0, w, h), w, h, src, d2)

	for i := range d1 {
		if d1[i] != d2[i] {
			t.Fatalf("parallel differs from serial at byte %d", i)
		}
	}
}
