package colorspace

import "testing"

func TestToLinearLeavesAlphaUntouched(t *testing.T) {
	data := []uint8{200, 100, 50, 180, 10, 20, 30, 77}
	ToLinear(data, false)
	if data[3] != 180 || data[7] != 77 {
		t.Errorf("alpha changed: got %d, %d, want 180, 77", data[3], data[7])
	}
}

func TestToLinearToSRGBRoundTrip(t *testing.T) {
	data := []uint8{200, 100, 50, 255, 30, 60, 90, 255}
	orig := make([]uint8, len(data))
	copy(orig, data)

	ToLinear(data, false)
	ToSRGB(data, false)

	for i := range data {
		diff := int(data[i]) - int(orig[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > 7 {
			t.Errorf("channel %d: round trip %d -> %d, error %d", i, orig[i], data[i], diff)
		}
	}
}

func TestConvertPremultiplied(t *testing.T) {
	// A half-transparent premultiplied gray: straight value 128, alpha 128.
	data := []uint8{64, 64, 64, 128}
	ToLinear(data, true)

	// Straight 128 linearizes to ~55; premultiplied by 128/255 gives ~28.
	want := premul(SRGBToLinearByte(unpremul(64, 128)), 128)
	if data[0] != want {
		t.Errorf("premultiplied linearize = %d, want %d", data[0], want)
	}
	if data[3] != 128 {
		t.Errorf("alpha = %d, want 128", data[3])
	}
}

func TestConvertTransparentStaysTransparentBlack(t *testing.T) {
	data := []uint8{40, 50, 60, 0}
	ToLinear(data, true)
	if data[0] != 0 || data[1] != 0 || data[2] != 0 || data[3] != 0 {
		t.Errorf("transparent pixel = %v, want transparent black", data)
	}
}

func TestPremultiplyUnpremultiply(t *testing.T) {
	tests := []struct {
		name string
		in   []uint8
		want []uint8
	}{
		{
			name: "opaque unchanged",
			in:   []uint8{200, 100, 50, 255},
			want: []uint8{200, 100, 50, 255},
		},
		{
			name: "half alpha halves channels",
			in:   []uint8{200, 100, 50, 128},
			want: []uint8{100, 50, 25, 128},
		},
		{
			name: "zero alpha clears channels",
			in:   []uint8{200, 100, 50, 0},
			want: []uint8{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]uint8, len(tt.in))
			copy(data, tt.in)
			Premultiply(data)
			for i := range data {
				diff := int(data[i]) - int(tt.want[i])
				if diff > 1 || diff < -1 {
					t.Errorf("Premultiply channel %d = %d, want %d", i, data[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnpremultiplyInvertsPremultiply(t *testing.T) {
	data := []uint8{200, 100, 50, 200}
	orig := make([]uint8, len(data))
	copy(orig, data)

	Premultiply(data)
	Unpremultiply(data)

	for i := range data {
		diff := int(data[i]) - int(orig[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			t.Errorf("channel %d: %d -> %d after round trip", i, orig[i], data[i])
		}
	}
}
