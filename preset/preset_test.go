package preset

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddvk/sceneio/scene"
)

func TestCheckerDeterministic(t *testing.T) {
	a, err := Image("checker")
	require.NoError(t, err)
	b, err := Image("checker")
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, a.Width)
	assert.Equal(t, DefaultHeight, a.Height)
	assert.Equal(t, a.Pixels, b.Pixels)
}

func TestUnknownPreset(t *testing.T) {
	img, err := Image("not-a-real-name")
	assert.Nil(t, img)
	assert.ErrorIs(t, err, scene.ErrUnknownPreset)
	assert.Contains(t, err.Error(), "not-a-real-name")

	_, err = Texture("Checker")
	assert.ErrorIs(t, err, scene.ErrUnknownPreset)
}

func TestSize(t *testing.T) {
	w, h := Size("sky")
	assert.Equal(t, 2048, w)
	assert.Equal(t, 1024, h)
	w, _ = Size("test-sunsky")
	assert.Equal(t, 2048, w)
	w, _ = Size("grid")
	assert.Equal(t, 1024, w)
}

func TestEveryPresetSmall(t *testing.T) {
	for _, name := range Names() {
		if name == "images1" || name == "images2" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			img, err := ImageSize(name, 32, 16)
			require.NoError(t, err)
			assert.Equal(t, 32, img.Width)
			assert.Equal(t, 16, img.Height)
			require.Len(t, img.Pixels, 32*16)
			for _, c := range img.Pixels {
				for k := 0; k < 4; k++ {
					assert.False(t, c[k] != c[k], "NaN in %s", name)
					assert.GreaterOrEqual(t, c[k], float32(0))
				}
			}
		})
	}
}

func TestLinearPresets(t *testing.T) {
	for name, linear := range map[string]bool{
		"sky":           true,
		"sunsky":        true,
		"blackbodyramp": true,
		"grid":          false,
		"noise":         false,
	} {
		img, err := ImageSize(name, 16, 8)
		require.NoError(t, err)
		assert.Equal(t, linear, img.Linear, name)

		texture, err := TextureSize(name, 16, 8)
		require.NoError(t, err)
		assert.Equal(t, linear, texture.Linear, name)
		if linear {
			assert.Len(t, texture.PixelsF, 16*8)
			assert.Empty(t, texture.PixelsB)
		} else {
			assert.Len(t, texture.PixelsB, 16*8)
			assert.Empty(t, texture.PixelsF)
		}
	}
}

func TestCheckerColors(t *testing.T) {
	texture, err := TextureSize("checker", 8, 8)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{51, 51, 51, 255}, texture.PixelsB[0])
	assert.Equal(t, [4]uint8{128, 128, 128, 255}, texture.PixelsB[2])

	opacity, err := TextureSize("test-checker-opacity", 8, 8)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, opacity.PixelsB[0])
	assert.Equal(t, [4]uint8{0, 0, 0, 0}, opacity.PixelsB[2])
}

func TestFloorHasBorder(t *testing.T) {
	img, err := ImageSize("test-floor", 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, img.At(0, 500))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, img.At(999, 500))
}

func TestSunBrighterThanSky(t *testing.T) {
	sky, err := ImageSize("sky", 512, 256)
	require.NoError(t, err)
	sun, err := ImageSize("sunsky", 512, 256)
	require.NoError(t, err)
	var skySum, sunSum float32
	for k := range sky.Pixels {
		skySum += sky.Pixels[k][0]
		sunSum += sun.Pixels[k][0]
	}
	assert.Greater(t, sunSum, skySum)
}

func TestBlackbodyRamp(t *testing.T) {
	warm := blackbodyToRGB(2000)
	cold := blackbodyToRGB(12000)
	assert.InDelta(t, 1, warm[0], 1e-5)
	assert.Less(t, warm[2], warm[0])
	assert.InDelta(t, 1, cold[2], 1e-5)
}

func TestMontage(t *testing.T) {
	if testing.Short() {
		t.Skip("large montage")
	}
	img, err := Image("images2")
	require.NoError(t, err)
	assert.Equal(t, 4096, img.Width)
	assert.Equal(t, 1024, img.Height)
	assert.True(t, img.Linear)
}

func TestMontagePlacesSubImages(t *testing.T) {
	solid := func(w, h int, c mgl32.Vec4) generator {
		return func(_, _ int) *raw {
			r := newRaw(w, h, true)
			for k := range r.pixels {
				r.pixels[k] = c
			}
			return r
		}
	}
	red, blue := mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{0, 0, 1, 1}
	catalog["tile-red"] = solid(2, 1, red)
	catalog["tile-blue"] = solid(1, 2, blue)
	t.Cleanup(func() {
		delete(catalog, "tile-red")
		delete(catalog, "tile-blue")
	})

	out := montage("tile-red", "tile-blue")(0, 0)
	require.Equal(t, 3, out.width)
	require.Equal(t, 2, out.height)
	assert.Equal(t, red, out.at(1, 0))
	assert.Equal(t, mgl32.Vec4{}, out.at(1, 1))
	assert.Equal(t, blue, out.at(2, 0))
	assert.Equal(t, blue, out.at(2, 1))
}
