package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddvk/sceneio/scene"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a/b/image.png", PNG},
		{"IMAGE.PNG", PNG},
		{"photo.JPG", JPEG},
		{"photo.jpeg", JPEG},
		{"env.hdr", HDR},
		{"env.EXR", EXR},
		{"old.bmp", BMP},
		{"old.Tga", TGA},
		{"textures/checker.ypreset", Preset},
		{"shapes/bunny.ply", PLY},
		{"shapes/bunny.OBJ", OBJ},
		{"shapes/part.stl", STL},
		{"dump.cpp", CPP},
		{"scene.json", JSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Lookup(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupUnsupported(t *testing.T) {
	for _, path := range []string{"scene.gltf", "noext", "archive.tar.gz"} {
		_, err := Lookup(path)
		assert.ErrorIs(t, err, scene.ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), path)
	}
}

func TestLookupKind(t *testing.T) {
	f, err := LookupKind("mesh.ply", KindMesh)
	require.NoError(t, err)
	assert.Equal(t, PLY, f)

	_, err = LookupKind("mesh.ply", KindImage)
	assert.ErrorIs(t, err, scene.ErrUnsupportedFormat)
}

func TestFormatProperties(t *testing.T) {
	assert.True(t, HDR.Linear())
	assert.True(t, EXR.Linear())
	assert.False(t, PNG.Linear())
	assert.True(t, PNG.Encoded())
	assert.False(t, HDR.Encoded())
	assert.False(t, Preset.Encoded())
	assert.Equal(t, "png", PNG.String())
	assert.Equal(t, "unknown", Unknown.String())
}

func TestPresetName(t *testing.T) {
	assert.Equal(t, "checker", PresetName("textures/checker.ypreset"))
	assert.Equal(t, "Test-Grid", PresetName("Test-Grid.YPRESET"))
}
