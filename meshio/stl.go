package meshio

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hschendel/stl"
)

// ReadSTL reads an ascii or binary STL stream. Triangle corners with equal
// coordinates are merged into one vertex.
func ReadSTL(r io.ReadSeeker) (*Mesh, error) {
	solid, err := stl.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m := &Mesh{Faces: make([][]int, 0, len(solid.Triangles))}
	index := map[stl.Vec3]int{}
	for _, triangle := range solid.Triangles {
		face := make([]int, 3)
		for k, v := range triangle.Vertices {
			idx, ok := index[v]
			if !ok {
				idx = len(m.Positions)
				index[v] = idx
				m.Positions = append(m.Positions, mgl32.Vec3(v))
			}
			face[k] = idx
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}

// WriteSTL writes the faces of m as binary STL, splitting polygons into
// triangles. Points and lines have no STL representation and are dropped.
func WriteSTL(w io.Writer, m *Mesh) error {
	triangles := Triangulate(m.Faces)
	header := make([]byte, 80)
	copy(header, "binary STL written by sceneio")
	solid := &stl.Solid{
		Name:         "sceneio",
		BinaryHeader: header,
		Triangles:    make([]stl.Triangle, 0, len(triangles)),
	}
	for _, t := range triangles {
		p0, p1, p2 := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		}
		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal:   stl.Vec3(normal),
			Vertices: [3]stl.Vec3{stl.Vec3(p0), stl.Vec3(p1), stl.Vec3(p2)},
		})
	}
	return solid.WriteAll(w)
}
