package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineScene() *Scene {
	s := &Scene{}
	s.Shapes = append(s.Shapes, Shape{
		Lines:     [][2]int{{0, 1}},
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
	})
	s.ShapeNames = append(s.ShapeNames, "line")
	for i := 0; i < 3; i++ {
		instance := NewInstance()
		instance.Shape = 0
		s.Instances = append(s.Instances, instance)
		s.InstanceNames = append(s.InstanceNames, "")
	}
	return s
}

func TestRepairAddsCamera(t *testing.T) {
	s := lineScene()
	Repair(s)

	require.Len(t, s.Cameras, 1)
	assert.Equal(t, []string{"camera"}, s.CameraNames)
	camera := s.Cameras[0]
	assert.False(t, camera.Orthographic)
	assert.InDelta(t, 16.0/9.0, camera.Aspect, 1e-6)
	assert.InDelta(t, 0.050, camera.Lens, 1e-6)

	center := mgl32.Vec3{0.5, 0, 0}
	origin := camera.Frame.O()
	assert.InDelta(t, center[0], origin[0], 1e-5)
	assert.InDelta(t, center[1], origin[1], 1e-5)
	assert.Greater(t, origin[2], float32(0))
	assert.InDelta(t, origin.Sub(center).Len(), camera.Focus, 1e-4)
}

func TestRepairKeepsExistingCamera(t *testing.T) {
	s := &Scene{}
	camera := NewCamera()
	camera.Lens = 0.085
	s.Cameras = append(s.Cameras, camera)
	Repair(s)

	require.Len(t, s.Cameras, 1)
	assert.Equal(t, float32(0.085), s.Cameras[0].Lens)
	assert.Empty(t, s.Materials)
}

func TestRepairFillsRadiusAndEnds(t *testing.T) {
	s := lineScene()
	Repair(s)

	shape := s.Shapes[0]
	assert.Equal(t, []float32{DefaultRadius, DefaultRadius}, shape.Radius)
	assert.Equal(t, []LineEnd{Cap, Cap}, shape.Ends)
}

func TestRepairKeepsExplicitRadius(t *testing.T) {
	s := &Scene{}
	s.Shapes = append(s.Shapes, Shape{
		Points:    []int{0},
		Positions: []mgl32.Vec3{{0, 0, 0}},
		Radius:    []float32{0.5},
	})
	Repair(s)
	assert.Equal(t, []float32{0.5}, s.Shapes[0].Radius)
	assert.Nil(t, s.Shapes[0].Ends)
}

func TestRepairSharedDefaultMaterial(t *testing.T) {
	s := lineScene()
	material := NewMaterial()
	s.Materials = append(s.Materials, material)
	s.MaterialNames = append(s.MaterialNames, "given")
	s.Instances[1].Material = 0
	Repair(s)

	require.Len(t, s.Materials, 2)
	assert.Equal(t, DefaultMaterialColor, s.Materials[1].Color)
	assert.Equal(t, Matte, s.Materials[1].Type)
	assert.Equal(t, 1, s.Instances[0].Material)
	assert.Equal(t, 0, s.Instances[1].Material)
	assert.Equal(t, 1, s.Instances[2].Material)
	assert.Len(t, s.MaterialNames, 2)
}

func TestRepairIdempotent(t *testing.T) {
	s := lineScene()
	Repair(s)
	cameras := len(s.Cameras)
	materials := len(s.Materials)
	first := *s

	Repair(s)
	assert.Len(t, s.Cameras, cameras)
	assert.Len(t, s.Materials, materials)
	assert.Equal(t, first, *s)
}

func TestTrimMemory(t *testing.T) {
	s := &Scene{}
	positions := make([]mgl32.Vec3, 2, 16)
	s.Shapes = append(s.Shapes, Shape{Points: []int{0, 1}, Positions: positions, Normals: []mgl32.Vec3{}})
	TrimMemory(s)
	assert.Equal(t, 2, cap(s.Shapes[0].Positions))
	assert.Nil(t, s.Shapes[0].Normals)
	assert.Equal(t, len(s.Shapes), cap(s.Shapes))
}

func TestSceneNames(t *testing.T) {
	s := lineScene()
	assert.Equal(t, "line", s.ShapeName(0))
	assert.Equal(t, "instance1", s.InstanceName(0))
	assert.Equal(t, "", s.InstanceName(5))
	assert.Equal(t, "", s.CameraName(-1))

	s.Instances = make([]Instance, 12)
	s.InstanceNames = nil
	assert.Equal(t, "instance03", s.InstanceName(2))
}

func TestBounds(t *testing.T) {
	s := lineScene()
	s.Instances[1].Frame = IdentityFrame
	s.Instances[1].Frame[10] = 2
	bbox := s.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, bbox.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, bbox.Max)
	assert.True(t, (&Scene{}).Bounds().IsEmpty())
}

func TestMaterialTypeText(t *testing.T) {
	for _, mt := range []MaterialType{Matte, Glossy, Reflective, Transparent, Refractive, Subsurface, Volumetric, GltfPbr} {
		text, err := mt.MarshalText()
		require.NoError(t, err)
		var back MaterialType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, mt, back)
	}
	_, err := ParseMaterialType("plastic")
	assert.ErrorIs(t, err, ErrParse)
}

func TestImageSetRegionClips(t *testing.T) {
	img := NewImage(3, 2, true)
	region := NewImage(2, 3, true)
	for k := range region.Pixels {
		region.Pixels[k] = mgl32.Vec4{float32(k), 0, 0, 1}
	}
	img.SetRegion(region, 2, 0)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, img.At(2, 0))
	assert.Equal(t, mgl32.Vec4{2, 0, 0, 1}, img.At(2, 1))
	assert.Equal(t, mgl32.Vec4{}, img.At(1, 1))
}
