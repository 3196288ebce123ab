package colorspace

import "testing"

func TestSRGBToLinearFastMatchesSlow(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := SRGBToLinearFast(uint8(i))
		slow := SRGBToLinearSlow(uint8(i))
		if diff := fast - slow; diff > 0.0001 || diff < -0.0001 {
			t.Errorf("SRGBToLinearFast(%d) = %v, want %v", i, fast, slow)
		}
	}
}

func TestLinearToSRGBFastMatchesSlow(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000
		fast := LinearToSRGBFast(l)
		slow := LinearToSRGBSlow(l)
		diff := int(fast) - int(slow)
		if diff > 1 || diff < -1 {
			t.Errorf("LinearToSRGBFast(%v) = %d, want %d", l, fast, slow)
		}
	}
}

func TestLinearToSRGBFastClamps(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  uint8
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"one", 1, 255},
		{"above one", 2.5, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToSRGBFast(tt.input); got != tt.want {
				t.Errorf("LinearToSRGBFast(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestKnownConversionValues(t *testing.T) {
	// sRGB 128 is not linear 0.5: the transfer function is nonlinear.
	if got := SRGBToLinearFast(128); got < 0.21 || got > 0.22 {
		t.Errorf("SRGBToLinearFast(128) = %v, want ~0.2159", got)
	}
	if got := LinearToSRGBFast(0.5); got != 188 {
		t.Errorf("LinearToSRGBFast(0.5) = %d, want 188", got)
	}
}

// Round-trip law: sRGB → linear → sRGB reproduces the original channel
// within the quantization error of the 8-bit linear intermediate, which is
// largest in the dark range where the sRGB curve is steep.
func TestByteRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		linear := SRGBToLinearByte(uint8(i))
		back := LinearToSRGBByte(linear)
		diff := int(back) - i
		if diff < 0 {
			diff = -diff
		}
		if diff > 7 {
			t.Errorf("round trip of %d = %d, error %d exceeds quantization bound", i, back, diff)
		}
	}
}
