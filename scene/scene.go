// Package scene holds the in-memory scene graph: arenas of cameras,
// textures, materials, shapes and instances that reference each other by
// index.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// InvalidID marks an absent cross reference.
const InvalidID = -1

// DefaultRadius is assigned to point and line vertices with no radius.
const DefaultRadius float32 = 0.001

// Frame3 is a rigid transform stored as x, y, z axes followed by the origin.
type Frame3 [12]float32

// IdentityFrame is the frame at the origin aligned with the world axes.
var IdentityFrame = Frame3{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}

func (f Frame3) X() mgl32.Vec3 { return mgl32.Vec3{f[0], f[1], f[2]} }
func (f Frame3) Y() mgl32.Vec3 { return mgl32.Vec3{f[3], f[4], f[5]} }
func (f Frame3) Z() mgl32.Vec3 { return mgl32.Vec3{f[6], f[7], f[8]} }
func (f Frame3) O() mgl32.Vec3 { return mgl32.Vec3{f[9], f[10], f[11]} }

// TransformPoint maps p from frame-local to world coordinates.
func (f Frame3) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return f.X().Mul(p[0]).Add(f.Y().Mul(p[1])).Add(f.Z().Mul(p[2])).Add(f.O())
}

// MakeFrame assembles a frame from its axes and origin.
func MakeFrame(x, y, z, o mgl32.Vec3) Frame3 {
	return Frame3{x[0], x[1], x[2], y[0], y[1], y[2], z[0], z[1], z[2], o[0], o[1], o[2]}
}

// LookAtFrame returns a frame positioned at from whose z axis points away
// from to.
func LookAtFrame(from, to, up mgl32.Vec3) Frame3 {
	w := from.Sub(to).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u).Normalize()
	return MakeFrame(u, v, w, from)
}

type Camera struct {
	Frame        Frame3
	Orthographic bool
	Lens         float32
	Film         float32
	Aspect       float32
	Focus        float32
	Aperture     float32
}

// NewCamera returns a camera with the documented defaults.
func NewCamera() Camera {
	return Camera{
		Frame:  IdentityFrame,
		Lens:   0.050,
		Film:   0.036,
		Aspect: 1.5,
		Focus:  10000,
	}
}

type Texture struct {
	Width   int
	Height  int
	Linear  bool
	PixelsF []mgl32.Vec4
	PixelsB [][4]uint8
}

type Material struct {
	Type          MaterialType
	Emission      mgl32.Vec3
	Color         mgl32.Vec3
	Roughness     float32
	Metallic      float32
	IOR           float32
	Scattering    mgl32.Vec3
	ScAnisotropy  float32
	TrDepth       float32
	Opacity       float32
	EmissionTex   int
	ColorTex      int
	RoughnessTex  int
	ScatteringTex int
	NormalTex     int
}

// NewMaterial returns a material with the documented defaults.
func NewMaterial() Material {
	return Material{
		Type:          Matte,
		IOR:           1.5,
		TrDepth:       0.01,
		Opacity:       1,
		EmissionTex:   InvalidID,
		ColorTex:      InvalidID,
		RoughnessTex:  InvalidID,
		ScatteringTex: InvalidID,
		NormalTex:     InvalidID,
	}
}

// LineEnd is the per-vertex decoration of a line endpoint.
type LineEnd uint8

const (
	Cap LineEnd = iota
	Arrow
)

// Shape holds one kind of topology (points, lines, triangles or quads)
// and per-vertex attributes.
type Shape struct {
	Points    []int
	Lines     [][2]int
	Triangles [][3]int
	Quads     [][4]int

	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Texcoords []mgl32.Vec2
	Colors    []mgl32.Vec4
	Radius    []float32
	Tangents  []mgl32.Vec4
	Ends      []LineEnd

	BorderRadius float32
}

// Empty reports whether the shape has no elements of any topology.
func (s *Shape) Empty() bool {
	return len(s.Points) == 0 && len(s.Lines) == 0 && len(s.Triangles) == 0 && len(s.Quads) == 0
}

type Instance struct {
	Frame          Frame3
	Shape          int
	Material       int
	BorderMaterial int
}

// NewInstance returns an instance with no shape or material assigned.
func NewInstance() Instance {
	return Instance{
		Frame:          IdentityFrame,
		Shape:          InvalidID,
		Material:       InvalidID,
		BorderMaterial: InvalidID,
	}
}

// Image is a float RGBA raster. Pixels are always linear; Linear records
// whether the source encoding was linear.
type Image struct {
	Width  int
	Height int
	Linear bool
	Pixels []mgl32.Vec4
}

// NewImage allocates a black transparent image.
func NewImage(width, height int, linear bool) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Linear: linear,
		Pixels: make([]mgl32.Vec4, width*height),
	}
}

func (img *Image) At(i, j int) mgl32.Vec4 {
	return img.Pixels[j*img.Width+i]
}

func (img *Image) Set(i, j int, c mgl32.Vec4) {
	img.Pixels[j*img.Width+i] = c
}

// SetRegion copies region into img with its top-left corner at (x, y).
func (img *Image) SetRegion(region *Image, x, y int) {
	for j := 0; j < region.Height; j++ {
		if y+j >= img.Height {
			break
		}
		for i := 0; i < region.Width; i++ {
			if x+i >= img.Width {
				break
			}
			img.Set(x+i, y+j, region.At(i, j))
		}
	}
}

type Scene struct {
	Cameras   []Camera
	Textures  []Texture
	Materials []Material
	Shapes    []Shape
	Instances []Instance

	CameraNames   []string
	TextureNames  []string
	MaterialNames []string
	ShapeNames    []string
	InstanceNames []string

	Copyright string
}
