package colorspace

// Buffer-level conversions over raw RGBA sample slices (4 bytes per pixel).
// All functions convert in place and never touch the alpha channel; alpha is
// always linear and never gamma-encoded.
//
// Premultiplied data is un-premultiplied per pixel before the transfer
// function is applied and re-premultiplied afterward, since the sRGB curve
// is defined on straight-alpha values.

// ToLinear converts RGB channels of data from sRGB to linear in place.
// Set premultiplied when the samples are alpha-premultiplied.
func ToLinear(data []uint8, premultiplied bool) {
	convert(data, premultiplied, srgbToLinearByteLUT[:])
}

// ToSRGB converts RGB channels of data from linear to sRGB in place.
// Set premultiplied when the samples are alpha-premultiplied.
func ToSRGB(data []uint8, premultiplied bool) {
	convert(data, premultiplied, linearToSRGBByteLUT[:])
}

func convert(data []uint8, premultiplied bool, lut []uint8) {
	if !premultiplied {
		for i := 0; i+3 < len(data); i += 4 {
			data[i+0] = lut[data[i+0]]
			data[i+1] = lut[data[i+1]]
			data[i+2] = lut[data[i+2]]
		}
		return
	}
	for i := 0; i+3 < len(data); i += 4 {
		a := data[i+3]
		switch a {
		case 0:
			data[i+0], data[i+1], data[i+2] = 0, 0, 0
		case 255:
			data[i+0] = lut[data[i+0]]
			data[i+1] = lut[data[i+1]]
			data[i+2] = lut[data[i+2]]
		default:
			data[i+0] = premul(lut[unpremul(data[i+0], a)], a)
			data[i+1] = premul(lut[unpremul(data[i+1], a)], a)
			data[i+2] = premul(lut[unpremul(data[i+2], a)], a)
		}
	}
}

// Premultiply scales RGB channels by alpha in place.
func Premultiply(data []uint8) {
	for i := 0; i+3 < len(data); i += 4 {
		a := data[i+3]
		if a == 255 {
			continue
		}
		if a == 0 {
			data[i+0], data[i+1], data[i+2] = 0, 0, 0
			continue
		}
		data[i+0] = premul(data[i+0], a)
		data[i+1] = premul(data[i+1], a)
		data[i+2] = premul(data[i+2], a)
	}
}

// Unpremultiply divides RGB channels by alpha in place.
// Fully transparent pixels stay transparent black.
func Unpremultiply(data []uint8) {
	for i := 0; i+3 < len(data); i += 4 {
		a := data[i+3]
		if a == 255 || a == 0 {
			continue
		}
		data[i+0] = unpremul(data[i+0], a)
		data[i+1] = unpremul(data[i+1], a)
		data[i+2] = unpremul(data[i+2], a)
	}
}

// premul multiplies a channel by alpha with rounding: (c * a + 127) / 255.
func premul(c, a uint8) uint8 {
	return uint8((uint16(c)*uint16(a) + 127) / 255)
}

// unpremul divides a channel by alpha with rounding and clamps to 255.
// a must be non-zero.
func unpremul(c, a uint8) uint8 {
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
