// Package colorspace converts between sRGB encoded and linear color.
package colorspace

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// srgbToLinearLUT maps an encoded byte to its linear value.
var srgbToLinearLUT [256]float32

func init() {
	for i := range srgbToLinearLUT {
		srgbToLinearLUT[i] = SRGBToLinear(float32(i) / 255)
	}
}

// SRGBToLinear is the sRGB decoding transfer function.
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB is the sRGB encoding transfer function.
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1/2.4) - 0.055
}

// SRGBToLinearColor decodes the color channels; alpha is always linear.
func SRGBToLinearColor(c mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{SRGBToLinear(c[0]), SRGBToLinear(c[1]), SRGBToLinear(c[2]), c[3]}
}

// LinearToSRGBColor encodes the color channels; alpha is always linear.
func LinearToSRGBColor(c mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{LinearToSRGB(c[0]), LinearToSRGB(c[1]), LinearToSRGB(c[2]), c[3]}
}

// ByteToFloat maps [0,255] to [0,1].
func ByteToFloat(c [4]uint8) mgl32.Vec4 {
	return mgl32.Vec4{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
}

// FloatToByte maps [0,1] to [0,255] with clamping and rounding.
func FloatToByte(c mgl32.Vec4) [4]uint8 {
	return [4]uint8{clampAndRound(c[0]), clampAndRound(c[1]), clampAndRound(c[2]), clampAndRound(c[3])}
}

// DecodeByte converts an encoded byte pixel to a linear float pixel.
func DecodeByte(c [4]uint8) mgl32.Vec4 {
	return mgl32.Vec4{srgbToLinearLUT[c[0]], srgbToLinearLUT[c[1]], srgbToLinearLUT[c[2]], float32(c[3]) / 255}
}

// EncodeByte converts a linear float pixel to an encoded byte pixel.
func EncodeByte(c mgl32.Vec4) [4]uint8 {
	return FloatToByte(LinearToSRGBColor(c))
}

func clampAndRound(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
