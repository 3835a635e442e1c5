// Package color converts between the sRGB transfer curve and linear light.
//
// Decoding goes through a 256-entry table. Encoding uses a 4096-entry table
// indexed by the linear value quantized to 12 bits, which is within one step
// of the exact 8-bit result.
package color

import "math"

var (
	decodeLUT [256]float32
	encodeLUT [4096]uint8
)

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = float32(Decode(float64(i) / 255))
	}
	for i := range encodeLUT {
		encodeLUT[i] = quantize(Encode(float64(i) / 4095))
	}
}

// Decode applies the sRGB EOTF to s in [0, 1].
func Decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Encode applies the inverse of Decode to l in [0, 1].
func Encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// ToLinear decodes an 8-bit sRGB component.
func ToLinear(s uint8) float32 {
	return decodeLUT[s]
}

// FromLinear encodes a linear component to 8-bit sRGB. Values outside
// [0, 1] are clamped.
func FromLinear(l float32) uint8 {
	switch {
	case !(l > 0):
		return 0
	case l >= 1:
		return 255
	}
	return encodeLUT[int(l*4095+0.5)]
}

func quantize(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
