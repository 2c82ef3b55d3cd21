package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrOBJIndex = errors.New("obj index out of range")

// objVertex is a position/texcoord/normal triplet; zero means absent.
type objVertex struct {
	position, texcoord, normal int
}

type objReader struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec4
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3

	mesh     *Mesh
	vertices map[objVertex]int
	order    []objVertex
}

func parseFloats(fields []string, out []float32) error {
	for k := range out {
		if k >= len(fields) {
			return fmt.Errorf("%w: expected %d values", errUnknownToken, len(out))
		}
		v, err := strconv.ParseFloat(fields[k], 32)
		if err != nil {
			return fmt.Errorf("%w %q", errUnknownToken, fields[k])
		}
		out[k] = float32(v)
	}
	return nil
}

// resolve converts a one based, possibly negative, obj index.
func resolve(token string, count int) (int, error) {
	if token == "" {
		return 0, nil
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w %q", errUnknownToken, token)
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx <= 0 || idx > count {
		return 0, fmt.Errorf("%w: %s", ErrOBJIndex, token)
	}
	return idx, nil
}

func (o *objReader) vertex(token string) (int, error) {
	parts := strings.SplitN(token, "/", 3)
	var key objVertex
	var err error
	if key.position, err = resolve(parts[0], len(o.positions)); err != nil {
		return 0, err
	}
	if key.position == 0 {
		return 0, fmt.Errorf("%w: missing position", ErrOBJIndex)
	}
	if len(parts) > 1 {
		if key.texcoord, err = resolve(parts[1], len(o.texcoords)); err != nil {
			return 0, err
		}
	}
	if len(parts) > 2 {
		if key.normal, err = resolve(parts[2], len(o.normals)); err != nil {
			return 0, err
		}
	}
	if idx, ok := o.vertices[key]; ok {
		return idx, nil
	}
	idx := len(o.order)
	o.vertices[key] = idx
	o.order = append(o.order, key)
	return idx, nil
}

func (o *objReader) element(fields []string) ([]int, error) {
	items := make([]int, len(fields))
	for k, token := range fields {
		idx, err := o.vertex(token)
		if err != nil {
			return nil, err
		}
		items[k] = idx
	}
	return items, nil
}

// ReadOBJ parses the geometry of a Wavefront OBJ stream. Vertices are
// unified so that each distinct position/texcoord/normal triplet becomes
// one mesh vertex. Materials and groups are ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	o := &objReader{mesh: &Mesh{}, vertices: map[objVertex]int{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := o.parse(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	o.finish()
	return o.mesh, nil
}

func (o *objReader) parse(cmd string, args []string) error {
	switch cmd {
	case "v":
		var values [7]float32
		n := 3
		if len(args) >= 6 {
			n = 6
		}
		if err := parseFloats(args, values[:n]); err != nil {
			return err
		}
		o.positions = append(o.positions, mgl32.Vec3{values[0], values[1], values[2]})
		if n == 6 {
			o.colors = append(o.colors, mgl32.Vec4{values[3], values[4], values[5], 1})
		}
	case "vt":
		var values [2]float32
		if err := parseFloats(args, values[:]); err != nil {
			return err
		}
		o.texcoords = append(o.texcoords, values)
	case "vn":
		var values [3]float32
		if err := parseFloats(args, values[:]); err != nil {
			return err
		}
		o.normals = append(o.normals, values)
	case "f":
		items, err := o.element(args)
		if err != nil {
			return err
		}
		if len(items) >= 3 {
			o.mesh.Faces = append(o.mesh.Faces, items)
		}
	case "l":
		items, err := o.element(args)
		if err != nil {
			return err
		}
		for k := 1; k < len(items); k++ {
			o.mesh.Lines = append(o.mesh.Lines, [2]int{items[k-1], items[k]})
		}
	case "p":
		items, err := o.element(args)
		if err != nil {
			return err
		}
		o.mesh.Points = append(o.mesh.Points, items...)
	}
	return nil
}

// finish expands the unified vertices into attribute arrays.
func (o *objReader) finish() {
	m := o.mesh
	hasTexcoords, hasNormals := false, false
	for _, key := range o.order {
		hasTexcoords = hasTexcoords || key.texcoord != 0
		hasNormals = hasNormals || key.normal != 0
	}
	hasColors := len(o.colors) == len(o.positions) && len(o.colors) != 0
	m.Positions = make([]mgl32.Vec3, len(o.order))
	if hasTexcoords {
		m.Texcoords = make([]mgl32.Vec2, len(o.order))
	}
	if hasNormals {
		m.Normals = make([]mgl32.Vec3, len(o.order))
	}
	if hasColors {
		m.Colors = make([]mgl32.Vec4, len(o.order))
	}
	for i, key := range o.order {
		m.Positions[i] = o.positions[key.position-1]
		if hasColors {
			m.Colors[i] = o.colors[key.position-1]
		}
		if hasTexcoords && key.texcoord != 0 {
			m.Texcoords[i] = o.texcoords[key.texcoord-1]
		}
		if hasNormals && key.normal != 0 {
			m.Normals[i] = o.normals[key.normal-1]
		}
	}
	if len(o.order) == 0 {
		m.Positions = nil
	}
}

// WriteOBJ writes positions, texcoords, normals and elements. Every
// attribute shares the vertex numbering.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Written by sceneio")
	for i, p := range m.Positions {
		if len(m.Colors) != 0 {
			c := m.Colors[i]
			fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p[0], p[1], p[2], c[0], c[1], c[2])
		} else {
			fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
		}
	}
	for _, t := range m.Texcoords {
		fmt.Fprintf(bw, "vt %g %g\n", t[0], t[1])
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	vertex := func(idx int) string {
		idx++
		switch {
		case len(m.Texcoords) != 0 && len(m.Normals) != 0:
			return fmt.Sprintf("%d/%d/%d", idx, idx, idx)
		case len(m.Texcoords) != 0:
			return fmt.Sprintf("%d/%d", idx, idx)
		case len(m.Normals) != 0:
			return fmt.Sprintf("%d//%d", idx, idx)
		}
		return strconv.Itoa(idx)
	}
	element := func(cmd string, items ...int) {
		bw.WriteString(cmd)
		for _, idx := range items {
			bw.WriteByte(' ')
			bw.WriteString(vertex(idx))
		}
		bw.WriteByte('\n')
	}
	for _, face := range m.Faces {
		element("f", face...)
	}
	for _, line := range m.Lines {
		element("l", line[:]...)
	}
	for _, point := range m.Points {
		element("p", point)
	}
	return bw.Flush()
}
