package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaterialColor is the albedo of the material created for
// instances that have none.
var DefaultMaterialColor = mgl32.Vec3{0.8, 0.8, 0.8}

// Repair restores the invariants the document format does not enforce.
// The steps run in a fixed order: the camera is framed on the bounds
// before any buffer is shrunk. Running Repair twice changes nothing.
func Repair(s *Scene) {
	AddMissingCamera(s)
	AddMissingRadius(s, DefaultRadius)
	AddMissingEnds(s)
	AddMissingMaterial(s)
	TrimMemory(s)
}

// AddMissingCamera adds a perspective camera looking down -z at the
// center of the scene when the scene has no camera.
func AddMissingCamera(s *Scene) {
	if len(s.Cameras) != 0 {
		return
	}
	camera := NewCamera()
	camera.Orthographic = false
	camera.Film = 0.036
	camera.Aspect = 16.0 / 9.0
	camera.Aperture = 0
	camera.Lens = 0.050

	bbox := s.Bounds()
	if bbox.IsEmpty() {
		bbox = Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	}
	center := bbox.Center()
	radius := bbox.Radius()
	dir := mgl32.Vec3{0, 0, 1}
	dist := radius * camera.Lens / (camera.Film / camera.Aspect)
	// the tracer camera needs twice the framing distance
	dist *= 2
	from := dir.Mul(dist).Add(center)
	camera.Frame = LookAtFrame(from, center, mgl32.Vec3{0, 1, 0})
	camera.Focus = from.Sub(center).Len()

	s.Cameras = append(s.Cameras, camera)
	if len(s.CameraNames) == len(s.Cameras)-1 {
		s.CameraNames = append(s.CameraNames, "camera")
	}
}

// AddMissingRadius gives every point and line shape without radii a
// constant radius per vertex.
func AddMissingRadius(s *Scene, radius float32) {
	for i := range s.Shapes {
		shape := &s.Shapes[i]
		if len(shape.Points) == 0 && len(shape.Lines) == 0 {
			continue
		}
		if len(shape.Radius) != 0 {
			continue
		}
		shape.Radius = make([]float32, len(shape.Positions))
		for k := range shape.Radius {
			shape.Radius[k] = radius
		}
	}
}

// AddMissingEnds caps every vertex of line shapes without end flags.
func AddMissingEnds(s *Scene) {
	for i := range s.Shapes {
		shape := &s.Shapes[i]
		if len(shape.Lines) == 0 || len(shape.Ends) != 0 {
			continue
		}
		shape.Ends = make([]LineEnd, len(shape.Positions))
	}
}

// AddMissingMaterial assigns a single shared gray matte material to every
// instance without one. The material is created only if needed.
func AddMissingMaterial(s *Scene) {
	defaultMaterial := InvalidID
	for i := range s.Instances {
		instance := &s.Instances[i]
		if instance.Material >= 0 {
			continue
		}
		if defaultMaterial == InvalidID {
			material := NewMaterial()
			material.Color = DefaultMaterialColor
			s.Materials = append(s.Materials, material)
			if len(s.MaterialNames) == len(s.Materials)-1 {
				s.MaterialNames = append(s.MaterialNames, "")
			}
			defaultMaterial = len(s.Materials) - 1
		}
		instance.Material = defaultMaterial
	}
}

// TrimMemory reallocates every buffer whose capacity exceeds its length.
func TrimMemory(s *Scene) {
	for i := range s.Shapes {
		shape := &s.Shapes[i]
		shape.Points = shrink(shape.Points)
		shape.Lines = shrink(shape.Lines)
		shape.Triangles = shrink(shape.Triangles)
		shape.Quads = shrink(shape.Quads)
		shape.Positions = shrink(shape.Positions)
		shape.Normals = shrink(shape.Normals)
		shape.Texcoords = shrink(shape.Texcoords)
		shape.Colors = shrink(shape.Colors)
		shape.Radius = shrink(shape.Radius)
		shape.Tangents = shrink(shape.Tangents)
		shape.Ends = shrink(shape.Ends)
	}
	for i := range s.Textures {
		texture := &s.Textures[i]
		texture.PixelsF = shrink(texture.PixelsF)
		texture.PixelsB = shrink(texture.PixelsB)
	}
	s.Cameras = shrink(s.Cameras)
	s.Textures = shrink(s.Textures)
	s.Materials = shrink(s.Materials)
	s.Shapes = shrink(s.Shapes)
	s.Instances = shrink(s.Instances)
	s.CameraNames = shrink(s.CameraNames)
	s.TextureNames = shrink(s.TextureNames)
	s.MaterialNames = shrink(s.MaterialNames)
	s.ShapeNames = shrink(s.ShapeNames)
	s.InstanceNames = shrink(s.InstanceNames)
}

// shrink returns a slice with cap == len; empty slices become nil.
func shrink[T any](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	if cap(values) == len(values) {
		return values
	}
	out := make([]T, len(values))
	copy(out, values)
	return out
}
