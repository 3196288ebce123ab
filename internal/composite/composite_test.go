package composite

import (
	"image"
	"testing"

	"github.com/gogpu/svgfx/internal/parallel"
)

// pixel builds a single premultiplied RGBA pixel buffer.
func pixel(r, g, b, a uint8) []uint8 {
	return []uint8{r, g, b, a}
}

func TestOperatorString(t *testing.T) {
	tests := []struct {
		op   Operator
		want string
	}{
		{Over, "Over"},
		{In, "In"},
		{Out, "Out"},
		{Atop, "Atop"},
		{Xor, "Xor"},
		{Lighter, "Lighter"},
		{Arithmetic, "Arithmetic"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestPorterDuffPixels(t *testing.T) {
	// Premultiplied half-transparent red over opaque blue.
	red := pixel(128, 0, 0, 128)
	blue := pixel(0, 0, 255, 255)

	tests := []struct {
		name string
		op   Operator
		a, b []uint8
		want []uint8
	}{
		{"over transparent bottom is identity", Over, red, pixel(0, 0, 0, 0), pixel(128, 0, 0, 128)},
		{"over opaque bottom fills alpha", Over, red, blue, pixel(128, 0, 127, 255)},
		{"in keeps top where bottom opaque", In, red, blue, pixel(128, 0, 0, 128)},
		{"in transparent bottom clears", In, red, pixel(0, 0, 0, 0), pixel(0, 0, 0, 0)},
		{"out keeps top where bottom transparent", Out, red, pixel(0, 0, 0, 0), pixel(128, 0, 0, 128)},
		{"out opaque bottom clears", Out, red, blue, pixel(0, 0, 0, 0)},
		{"atop takes bottom alpha", Atop, red, blue, pixel(128, 0, 127, 255)},
		{"xor over opaque keeps uncovered bottom", Xor, red, blue, pixel(0, 0, 127, 127)},
		{"lighter sums", Lighter, pixel(100, 50, 20, 200), pixel(100, 50, 20, 100), pixel(200, 100, 40, 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := Func(tt.op)
			r, g, b, a := fn(tt.a[0], tt.a[1], tt.a[2], tt.a[3], tt.b[0], tt.b[1], tt.b[2], tt.b[3])
			got := []uint8{r, g, b, a}
			for i := range got {
				diff := int(got[i]) - int(tt.want[i])
				if diff > 1 || diff < -1 {
					t.Errorf("channel %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Scenario from the engine contract: compositing opaque red In opaque blue
// keeps red where blue's alpha is 1 and is transparent where it is 0.
func TestInScenario(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	const w, h = 2, 2
	a := make([]uint8, w*h*4)
	b := make([]uint8, w*h*4)
	dst := make([]uint8, w*h*4)

	// A = opaque red everywhere.
	for i := 0; i < len(a); i += 4 {
		a[i], a[i+3] = 255, 255
	}
	// B = opaque blue on the left column only.
	for y := 0; y < h; y++ {
		i := (y*w + 0) * 4
		b[i+2], b[i+3] = 255, 255
	}

	Apply(pool, In, [4]float32{}, image.Rect(0, 0, w, h), w, h, a, b, dst)

	for y := 0; y < h; y++ {
		left := (y*w + 0) * 4
		if dst[left] != 255 || dst[left+3] != 255 {
			t.Errorf("row %d left = %v, want opaque red", y, dst[left:left+4])
		}
		right := (y*w + 1) * 4
		if dst[right] != 0 || dst[right+3] != 0 {
			t.Errorf("row %d right = %v, want transparent", y, dst[right:right+4])
		}
	}
}

func TestArithmeticSum(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	a := pixel(64, 0, 0, 64)
	b := pixel(0, 64, 0, 64)
	dst := make([]uint8, 4)

	// k2 = k3 = 1: plain sum, like Lighter.
	Apply(pool, Arithmetic, [4]float32{0, 1, 1, 0}, image.Rect(0, 0, 1, 1), 1, 1, a, b, dst)

	want := []uint8{64, 64, 0, 128}
	for i := range dst {
		diff := int(dst[i]) - int(want[i])
		if diff > 1 || diff < -1 {
			t.Errorf("channel %d = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestArithmeticClampsToAlpha(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	// k4 = 1 pushes every channel to the top of its range. Color channels
	// must clamp to the result alpha, preserving the premultiplied
	// invariant, not to 1.
	a := pixel(0, 0, 0, 0)
	b := pixel(0, 0, 0, 0)
	dst := make([]uint8, 4)

	Apply(pool, Arithmetic, [4]float32{0, 0, 0, 0.5}, image.Rect(0, 0, 1, 1), 1, 1, a, b, dst)

	if dst[3] != 128 {
		t.Fatalf("alpha = %d, want 128", dst[3])
	}
	for c := 0; c < 3; c++ {
		if dst[c] > dst[3] {
			t.Errorf("channel %d = %d exceeds alpha %d", c, dst[c], dst[3])
		}
	}
}

func TestArithmeticNegativeClampsToZero(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	a := pixel(128, 128, 128, 128)
	dst := make([]uint8, 4)

	Apply(pool, Arithmetic, [4]float32{0, -1, 0, 0}, image.Rect(0, 0, 1, 1), 1, 1, a, pixel(0, 0, 0, 0), dst)

	for i := range dst {
		if dst[i] != 0 {
			t.Errorf("channel %d = %d, want 0", i, dst[i])
		}
	}
}

func TestApplyRespectsRegion(t *testing.T) {
	pool := parallel.New(1)
	defer pool.Close()

	const w, h = 4, 4
	a := make([]uint8, w*h*4)
	b := make([]uint8, w*h*4)
	dst := make([]uint8, w*h*4)
	for i := 0; i < len(a); i += 4 {
		a[i], a[i+3] = 255, 255
	}

	Apply(pool, Over, [4]float32{}, image.Rect(1, 1, 3, 3), w, h, a, b, dst)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			if inside && dst[i+3] != 255 {
				t.Errorf("(%d,%d) inside region not written", x, y)
			}
			if !inside && dst[i+3] != 0 {
				t.Errorf("(%d,%d) outside region written", x, y)
			}
		}
	}
}

func TestApplyParallelMatchesSerial(t *testing.T) {
	const w, h = 64, 64
	a := make([]uint8, w*h*4)
	b := make([]uint8, w*h*4)
	for i := 0; i+3 < len(a); i += 4 {
		a[i+3] = uint8((i / 4) % 256)
		a[i] = a[i+3] / 2
		b[i+3] = uint8((i / 3) % 256)
		b[i+1] = b[i+3] / 3
	}

	d1 := make([]uint8, len(a))
	d2 := make([]uint8, len(a))

	p1 := parallel.New(1)
	defer p1.Close()
	p4 := parallel.New(4)
	defer p4.Close()

	region := image.Rect(0, 0, w, h)
	Apply(p1, Xor, [4]float32{}, region, w, h, a, b, d1)
	Apply(p4, Xor, [4]float32{}, region, w, h, a, b, d2)

	for i := range d1 {
		if d1[i] != d2[i] {
			t.Fatalf("parallel differs from serial at byte %d", i)
		}
	}
}
