package colorspace

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransferEndpoints(t *testing.T) {
	assert.InDelta(t, 0, SRGBToLinear(0), 1e-7)
	assert.InDelta(t, 1, SRGBToLinear(1), 1e-6)
	assert.InDelta(t, 0, LinearToSRGB(0), 1e-7)
	assert.InDelta(t, 1, LinearToSRGB(1), 1e-6)
	assert.InDelta(t, 0.2140, SRGBToLinear(0.5), 1e-3)
}

func TestByteRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		c := [4]uint8{uint8(i), uint8(255 - i), uint8(i / 2), uint8(i)}
		assert.Equal(t, c, EncodeByte(DecodeByte(c)), "byte %d", i)
	}
}

func TestAlphaStaysLinear(t *testing.T) {
	c := mgl32.Vec4{0.5, 0.5, 0.5, 0.5}
	assert.Equal(t, float32(0.5), SRGBToLinearColor(c)[3])
	assert.Equal(t, float32(0.5), LinearToSRGBColor(c)[3])
	assert.Equal(t, uint8(128), EncodeByte(c)[3])
}

func TestFloatToByteClamps(t *testing.T) {
	assert.Equal(t, [4]uint8{0, 255, 128, 255}, FloatToByte(mgl32.Vec4{-1, 4, 0.5, 1}))
}
