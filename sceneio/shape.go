package sceneio

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ddvk/sceneio/format"
	"github.com/ddvk/sceneio/meshio"
	"github.com/ddvk/sceneio/scene"
)

// LoadShape reads a mesh file into a shape. Faces become quads when any
// face has four corners, triangles otherwise.
func LoadShape(path string, opts ...Option) (*scene.Shape, error) {
	o := newOptions(opts)
	m, err := meshio.Read(path)
	if err != nil {
		return nil, err
	}
	shape := meshToShape(m, o.flipTexcoord)
	if shape.Empty() {
		return nil, scene.EmptyShape(path)
	}
	return shape, nil
}

// SaveShape writes a shape to a mesh file. STL stores only triangles:
// quads are split and point or line shapes are rejected.
func SaveShape(path string, shape *scene.Shape, opts ...Option) error {
	o := newOptions(opts)
	f, err := format.LookupKind(path, format.KindMesh)
	if err != nil {
		return err
	}
	if f == format.STL && (len(shape.Points) != 0 || len(shape.Lines) != 0 ||
		len(shape.Triangles) == 0 && len(shape.Quads) == 0) {
		return scene.EmptyShape(path)
	}
	return meshio.Write(path, shapeToMesh(shape, o.flipTexcoord))
}

func flipTexcoords(texcoords []mgl32.Vec2) []mgl32.Vec2 {
	if len(texcoords) == 0 {
		return nil
	}
	out := make([]mgl32.Vec2, len(texcoords))
	for i, uv := range texcoords {
		out[i] = mgl32.Vec2{uv[0], 1 - uv[1]}
	}
	return out
}

func meshToShape(m *meshio.Mesh, flip bool) *scene.Shape {
	shape := &scene.Shape{
		Positions: m.Positions,
		Normals:   m.Normals,
		Texcoords: m.Texcoords,
		Colors:    m.Colors,
		Radius:    m.Radius,
		Tangents:  m.Tangents,
		Points:    m.Points,
		Lines:     m.Lines,
	}
	if flip {
		shape.Texcoords = flipTexcoords(m.Texcoords)
	}
	if len(m.Ends) != 0 {
		shape.Ends = make([]scene.LineEnd, len(m.Ends))
		for i, end := range m.Ends {
			shape.Ends[i] = scene.LineEnd(end)
		}
	}

	quads := false
	for _, face := range m.Faces {
		if len(face) == 4 {
			quads = true
			break
		}
	}
	for _, face := range m.Faces {
		switch {
		case quads && len(face) == 4:
			shape.Quads = append(shape.Quads, [4]int{face[0], face[1], face[2], face[3]})
		case quads:
			for _, t := range meshio.Triangulate([][]int{face}) {
				shape.Quads = append(shape.Quads, [4]int{t[0], t[1], t[2], t[2]})
			}
		default:
			shape.Triangles = append(shape.Triangles, meshio.Triangulate([][]int{face})...)
		}
	}
	return shape
}

func shapeToMesh(shape *scene.Shape, flip bool) *meshio.Mesh {
	m := &meshio.Mesh{
		Positions: shape.Positions,
		Normals:   shape.Normals,
		Texcoords: shape.Texcoords,
		Colors:    shape.Colors,
		Radius:    shape.Radius,
		Tangents:  shape.Tangents,
		Points:    shape.Points,
		Lines:     shape.Lines,
	}
	if flip {
		m.Texcoords = flipTexcoords(shape.Texcoords)
	}
	if len(shape.Ends) != 0 {
		m.Ends = make([]uint8, len(shape.Ends))
		for i, end := range shape.Ends {
			m.Ends[i] = uint8(end)
		}
	}
	m.Faces = make([][]int, 0, len(shape.Triangles)+len(shape.Quads))
	for _, t := range shape.Triangles {
		m.Faces = append(m.Faces, []int{t[0], t[1], t[2]})
	}
	for _, q := range shape.Quads {
		if q[2] == q[3] {
			m.Faces = append(m.Faces, []int{q[0], q[1], q[2]})
		} else {
			m.Faces = append(m.Faces, []int{q[0], q[1], q[2], q[3]})
		}
	}
	return m
}
