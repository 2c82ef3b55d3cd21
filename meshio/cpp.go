package meshio

import (
	"bufio"
	"fmt"
	"io"
)

// WriteCPP dumps m as C++ initializer lists, one array per non-empty
// attribute. The output is meant for pasting into test code and is never
// read back.
func WriteCPP(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "auto shape = shape_data{};")

	array := func(name, kind string, count int, item func(i int) string) {
		if count == 0 {
			return
		}
		fmt.Fprintf(bw, "shape.%s = vector<%s>{", name, kind)
		for i := 0; i < count; i++ {
			if i > 0 {
				bw.WriteString(", ")
			}
			bw.WriteString(item(i))
		}
		bw.WriteString("};\n")
	}

	array("points", "int", len(m.Points), func(i int) string {
		return fmt.Sprint(m.Points[i])
	})
	array("lines", "vec2i", len(m.Lines), func(i int) string {
		return fmt.Sprintf("{%d, %d}", m.Lines[i][0], m.Lines[i][1])
	})
	triangles, quads := splitFaces(m.Faces)
	array("triangles", "vec3i", len(triangles), func(i int) string {
		t := triangles[i]
		return fmt.Sprintf("{%d, %d, %d}", t[0], t[1], t[2])
	})
	array("quads", "vec4i", len(quads), func(i int) string {
		q := quads[i]
		return fmt.Sprintf("{%d, %d, %d, %d}", q[0], q[1], q[2], q[3])
	})
	array("positions", "vec3f", len(m.Positions), func(i int) string {
		p := m.Positions[i]
		return fmt.Sprintf("{%gf, %gf, %gf}", p[0], p[1], p[2])
	})
	array("normals", "vec3f", len(m.Normals), func(i int) string {
		n := m.Normals[i]
		return fmt.Sprintf("{%gf, %gf, %gf}", n[0], n[1], n[2])
	})
	array("texcoords", "vec2f", len(m.Texcoords), func(i int) string {
		t := m.Texcoords[i]
		return fmt.Sprintf("{%gf, %gf}", t[0], t[1])
	})
	array("colors", "vec4f", len(m.Colors), func(i int) string {
		c := m.Colors[i]
		return fmt.Sprintf("{%gf, %gf, %gf, %gf}", c[0], c[1], c[2], c[3])
	})
	array("radius", "float", len(m.Radius), func(i int) string {
		return fmt.Sprintf("%gf", m.Radius[i])
	})
	array("tangents", "vec4f", len(m.Tangents), func(i int) string {
		t := m.Tangents[i]
		return fmt.Sprintf("{%gf, %gf, %gf, %gf}", t[0], t[1], t[2], t[3])
	})
	return bw.Flush()
}

// splitFaces separates triangles from quads; larger polygons become fans.
func splitFaces(faces [][]int) (triangles [][3]int, quads [][4]int) {
	for _, face := range faces {
		switch len(face) {
		case 3:
			triangles = append(triangles, [3]int{face[0], face[1], face[2]})
		case 4:
			quads = append(quads, [4]int{face[0], face[1], face[2], face[3]})
		default:
			triangles = append(triangles, Triangulate([][]int{face})...)
		}
	}
	return
}
