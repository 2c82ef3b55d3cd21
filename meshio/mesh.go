// Package meshio reads and writes polygon meshes, line sets and point
// clouds in PLY, OBJ and STL files.
package meshio

import (
	"bufio"
	"bytes"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ddvk/sceneio/format"
	"github.com/ddvk/sceneio/internal/fsx"
	"github.com/ddvk/sceneio/scene"
)

// Mesh is the file level view of a shape: faces keep their original
// polygon size and attributes are optional per-vertex arrays.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Texcoords []mgl32.Vec2
	Colors    []mgl32.Vec4
	Radius    []float32
	Tangents  []mgl32.Vec4
	Ends      []uint8

	Points []int
	Lines  [][2]int
	Faces  [][]int
}

// Empty reports whether the mesh has no elements.
func (m *Mesh) Empty() bool {
	return len(m.Points) == 0 && len(m.Lines) == 0 && len(m.Faces) == 0
}

// Read loads the mesh at path, choosing the reader by extension.
func Read(path string) (*Mesh, error) {
	f, err := format.LookupKind(path, format.KindMesh)
	if err != nil {
		return nil, err
	}
	if f == format.CPP {
		return nil, scene.UnsupportedFormat(path)
	}
	data, err := fsx.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m *Mesh
	switch f {
	case format.PLY:
		m, err = ReadPLY(bufio.NewReader(bytes.NewReader(data)))
	case format.OBJ:
		m, err = ReadOBJ(bytes.NewReader(data))
	case format.STL:
		m, err = ReadSTL(bytes.NewReader(data))
	}
	if err != nil {
		return nil, scene.ParseError(path, err)
	}
	return m, nil
}

// Write saves m to path, choosing the writer by extension. The file is
// replaced atomically.
func Write(path string, m *Mesh) error {
	f, err := format.LookupKind(path, format.KindMesh)
	if err != nil {
		return err
	}
	var write func(io.Writer, *Mesh) error
	switch f {
	case format.PLY:
		write = WritePLY
	case format.OBJ:
		write = WriteOBJ
	case format.STL:
		write = WriteSTL
	case format.CPP:
		write = WriteCPP
	}
	return fsx.WriteFile(path, func(w io.Writer) error {
		if err := write(w, m); err != nil {
			return &scene.IOError{Op: "write", Path: path, Err: err}
		}
		return nil
	})
}

// Triangulate splits every face into a fan of triangles.
func Triangulate(faces [][]int) [][3]int {
	triangles := make([][3]int, 0, len(faces))
	for _, face := range faces {
		for k := 2; k < len(face); k++ {
			triangles = append(triangles, [3]int{face[0], face[k-1], face[k]})
		}
	}
	return triangles
}
