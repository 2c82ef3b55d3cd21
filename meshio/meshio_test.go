package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddvk/sceneio/scene"
)

func quadMesh() *Mesh {
	return &Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Texcoords: []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Faces:     [][]int{{0, 1, 2, 3}},
	}
}

func lineMesh() *Mesh {
	return &Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Colors:    []mgl32.Vec4{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 0.5}},
		Radius:    []float32{0.1, 0.2, 0.3},
		Tangents:  []mgl32.Vec4{{1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, -1}},
		Ends:      []uint8{1, 0, 1},
		Lines:     [][2]int{{0, 1}, {1, 2}},
	}
}

func TestPLYRoundTrip(t *testing.T) {
	for name, m := range map[string]*Mesh{"quads": quadMesh(), "lines": lineMesh()} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WritePLY(&buf, m))
			back, err := ReadPLY(bufio.NewReader(&buf))
			require.NoError(t, err)
			assert.Equal(t, m, back)
		})
	}
}

func TestPLYPoints(t *testing.T) {
	m := &Mesh{Positions: []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}}, Points: []int{0, 1}}
	var buf bytes.Buffer
	require.NoError(t, WritePLY(&buf, m))
	back, err := ReadPLY(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, back.Points)
}

const asciiPLY = `ply
format ascii 1.0
comment made by hand
element vertex 3
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element material 1
property float shininess
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255 0 0
1 0 0 0 255 0
0 1 0 0 0 255
0.5
3 0 1 2
`

func TestPLYASCII(t *testing.T) {
	m, err := ReadPLY(bufio.NewReader(strings.NewReader(asciiPLY)))
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, m.Positions)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, m.Colors[0])
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, m.Colors[2])
	assert.Equal(t, [][]int{{0, 1, 2}}, m.Faces)
}

func TestPLYBigEndian(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_big_endian 1.0\nelement vertex 1\nproperty double x\nproperty double y\nproperty double z\nelement point 1\nproperty list uchar uint vertex_indices\nend_header\n")
	for _, v := range []float64{1.5, -2, 3} {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, math.Float64bits(v)))
	}
	buf.WriteByte(1)
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(0)))

	m, err := ReadPLY(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{1.5, -2, 3}}, m.Positions)
	assert.Equal(t, []int{0}, m.Points)
}

func TestPLYErrors(t *testing.T) {
	_, err := ReadPLY(bufio.NewReader(strings.NewReader("solid cube\n")))
	assert.ErrorIs(t, err, ErrNotPLY)

	_, err = ReadPLY(bufio.NewReader(strings.NewReader("ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n")))
	assert.Error(t, err)

	_, err = ReadPLY(bufio.NewReader(strings.NewReader("ply\nformat ascii 1.0\nproperty float x\nend_header\n")))
	assert.ErrorIs(t, err, ErrPLYHeader)
}

const cubeOBJ = `# two faces sharing an edge
o cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 1 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl red
f 1/1/1 2/2/1 3/3/1 4/4/1
f -4/2/1 -1/1/1 -3/3/1
l 1 2 3
p 5
`

func TestOBJRead(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	require.Len(t, m.Faces, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Faces[0])
	// -4/2/1 is the same vertex as 2/2/1
	assert.Equal(t, 1, m.Faces[1][0])
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, m.Positions[m.Faces[1][1]])
	assert.Len(t, m.Texcoords, len(m.Positions))
	assert.Len(t, m.Normals, len(m.Positions))
	assert.Len(t, m.Lines, 2)
	assert.Len(t, m.Points, 1)
}

func TestOBJRoundTrip(t *testing.T) {
	m := quadMesh()
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m))
	back, err := ReadOBJ(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestOBJBadIndex(t *testing.T) {
	_, err := ReadOBJ(strings.NewReader("v 0 0 0\nf 1 2 3\n"))
	assert.ErrorIs(t, err, ErrOBJIndex)
}

func TestSTLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, quadMesh()))
	back, err := ReadSTL(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, back.Faces, 2)
	assert.Len(t, back.Positions, 4)
	for _, face := range back.Faces {
		assert.Len(t, face, 3)
	}
}

func TestTriangulate(t *testing.T) {
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}, Triangulate([][]int{{0, 1, 2, 3, 4}}))
}

func TestCPPDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCPP(&buf, quadMesh()))
	out := buf.String()
	assert.Contains(t, out, "shape.quads = vector<vec4i>{{0, 1, 2, 3}};")
	assert.Contains(t, out, "shape.positions = vector<vec3f>{")
	assert.NotContains(t, out, "shape.triangles")
}

func TestReadWriteFiles(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".ply", ".obj", ".stl"} {
		path := filepath.Join(dir, "mesh"+ext)
		require.NoError(t, Write(path, quadMesh()))
		m, err := Read(path)
		require.NoError(t, err, ext)
		assert.False(t, m.Empty(), ext)
	}

	require.NoError(t, Write(filepath.Join(dir, "mesh.cpp"), quadMesh()))
	_, err := Read(filepath.Join(dir, "mesh.cpp"))
	assert.ErrorIs(t, err, scene.ErrUnsupportedFormat)

	_, err = Read(filepath.Join(dir, "missing.ply"))
	assert.ErrorIs(t, err, scene.ErrIO)

	bad := filepath.Join(dir, "bad.ply")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	_, err = Read(bad)
	assert.ErrorIs(t, err, scene.ErrParse)
	assert.Contains(t, err.Error(), bad)

	_, err = Read(filepath.Join(dir, "mesh.gltf"))
	assert.ErrorIs(t, err, scene.ErrUnsupportedFormat)
}

func TestPLYRejectsBadCounts(t *testing.T) {
	huge := "ply\nformat ascii 1.0\nelement vertex 9000000000000000\nproperty float x\nend_header\n"
	_, err := ReadPLY(bufio.NewReader(strings.NewReader(huge)))
	assert.ErrorIs(t, err, ErrPLYHeader)

	// a count that fits the header but not the data runs out of input
	short := "ply\nformat binary_little_endian 1.0\nelement vertex 2000000000\nproperty float x\nproperty float y\nproperty float z\nend_header\n"
	short += string(make([]byte, 12))
	_, err = ReadPLY(bufio.NewReader(strings.NewReader(short)))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "at byte 12")

	empty := "ply\nformat ascii 1.0\nelement vertex 2000000000\nelement face 0\nproperty list uchar int vertex_indices\nend_header\n"
	m, err := ReadPLY(bufio.NewReader(strings.NewReader(empty)))
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestPLYRejectsBadIndices(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n"
	vertices := "0 0 0\n1 0 0\n0 1 0\n"
	for name, body := range map[string]string{
		"face":  "element face 1\nproperty list uchar int vertex_indices\nend_header\n" + vertices + "3 0 1 99\n",
		"line":  "element line 1\nproperty list uchar int vertex_indices\nend_header\n" + vertices + "2 0 3\n",
		"point": "element point 1\nproperty list uchar int vertex_indices\nend_header\n" + vertices + "1 -1\n",
	} {
		_, err := ReadPLY(bufio.NewReader(strings.NewReader(header + body)))
		assert.ErrorIs(t, err, ErrPLYIndex, name)
	}

	path := filepath.Join(t.TempDir(), "bad-index.ply")
	require.NoError(t, os.WriteFile(path, []byte(header+"element face 1\nproperty list uchar int vertex_indices\nend_header\n"+vertices+"3 0 1 99\n"), 0o644))
	_, err := Read(path)
	assert.ErrorIs(t, err, scene.ErrParse)
	assert.ErrorIs(t, err, ErrPLYIndex)
}
