package meshio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNotPLY       = errors.New("not a ply file")
	ErrPLYHeader    = errors.New("malformed ply header")
	ErrPLYFaceSize  = errors.New("ply face has more than 255 vertices")
	ErrPLYIndex     = errors.New("ply vertex index out of range")
	errUnknownToken = errors.New("unexpected token")
)

type scalarKind int

const (
	invalidKind scalarKind = iota
	int8Kind
	uint8Kind
	int16Kind
	uint16Kind
	int32Kind
	uint32Kind
	float32Kind
	float64Kind
)

// maxPLYCount bounds element counts in a header; plyPrealloc bounds how
// many records are allocated before any is read.
const (
	maxPLYCount = math.MaxInt32
	plyPrealloc = 1 << 16
)

var scalarKinds = map[string]scalarKind{
	"char":    int8Kind,
	"int8":    int8Kind,
	"uchar":   uint8Kind,
	"uint8":   uint8Kind,
	"short":   int16Kind,
	"int16":   int16Kind,
	"ushort":  uint16Kind,
	"uint16":  uint16Kind,
	"int":     int32Kind,
	"int32":   int32Kind,
	"uint":    uint32Kind,
	"uint32":  uint32Kind,
	"float":   float32Kind,
	"float32": float32Kind,
	"double":  float64Kind,
	"float64": float64Kind,
}

func (k scalarKind) size() int {
	switch k {
	case int8Kind, uint8Kind:
		return 1
	case int16Kind, uint16Kind:
		return 2
	case int32Kind, uint32Kind, float32Kind:
		return 4
	case float64Kind:
		return 8
	}
	return 0
}

func (k scalarKind) integer() bool {
	return k != float32Kind && k != float64Kind
}

type plyEncoding int

const (
	plyASCII plyEncoding = iota
	plyBinaryLE
	plyBinaryBE
)

type plyProperty struct {
	name      string
	kind      scalarKind
	list      bool
	countKind scalarKind
}

type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

// scalarReader is implemented by the ascii tokenizer and the binary
// deserializer.
type scalarReader interface {
	GetScalar(kind scalarKind) (float64, error)
}

type asciiReader struct {
	r   *bufio.Reader
	tok []byte
}

func (a *asciiReader) GetScalar(kind scalarKind) (float64, error) {
	a.tok = a.tok[:0]
	for {
		c, err := a.r.ReadByte()
		if err == io.EOF && len(a.tok) > 0 {
			break
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if len(a.tok) > 0 {
				break
			}
			continue
		}
		a.tok = append(a.tok, c)
	}
	v, err := strconv.ParseFloat(string(a.tok), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", errUnknownToken, a.tok)
	}
	return v, nil
}

func readPLYHeader(r *bufio.Reader) (encoding plyEncoding, elements []*plyElement, err error) {
	line, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return encoding, nil, ErrNotPLY
	}
	for {
		line, err = r.ReadString('\n')
		if err != nil {
			return encoding, nil, fmt.Errorf("%w: missing end_header", ErrPLYHeader)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return encoding, nil, fmt.Errorf("%w: %q", ErrPLYHeader, line)
			}
			switch fields[1] {
			case "ascii":
				encoding = plyASCII
			case "binary_little_endian":
				encoding = plyBinaryLE
			case "binary_big_endian":
				encoding = plyBinaryBE
			default:
				return encoding, nil, fmt.Errorf("%w: unknown format %s", ErrPLYHeader, fields[1])
			}
		case "comment", "obj_info":
		case "element":
			if len(fields) != 3 {
				return encoding, nil, fmt.Errorf("%w: %q", ErrPLYHeader, line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 || count > maxPLYCount {
				return encoding, nil, fmt.Errorf("%w: bad count %q", ErrPLYHeader, fields[2])
			}
			elements = append(elements, &plyElement{name: fields[1], count: count})
		case "property":
			if len(elements) == 0 {
				return encoding, nil, fmt.Errorf("%w: property before element", ErrPLYHeader)
			}
			prop, err := parsePLYProperty(fields)
			if err != nil {
				return encoding, nil, err
			}
			element := elements[len(elements)-1]
			element.properties = append(element.properties, prop)
		case "end_header":
			return encoding, elements, nil
		default:
			return encoding, nil, fmt.Errorf("%w: %q", ErrPLYHeader, line)
		}
	}
}

func parsePLYProperty(fields []string) (prop plyProperty, err error) {
	if len(fields) == 5 && fields[1] == "list" {
		prop = plyProperty{name: fields[4], list: true, countKind: scalarKinds[fields[2]], kind: scalarKinds[fields[3]]}
		if prop.countKind == invalidKind || prop.kind == invalidKind {
			err = fmt.Errorf("%w: bad list types %s %s", ErrPLYHeader, fields[2], fields[3])
		}
		return
	}
	if len(fields) != 3 {
		return prop, fmt.Errorf("%w: %q", ErrPLYHeader, strings.Join(fields, " "))
	}
	prop = plyProperty{name: fields[2], kind: scalarKinds[fields[1]]}
	if prop.kind == invalidKind {
		err = fmt.Errorf("%w: bad type %s", ErrPLYHeader, fields[1])
	}
	return
}

// vertexSlot says where a vertex property lands in the mesh.
type vertexSlot struct {
	attr    int
	channel int
}

const (
	attrNone = iota
	attrPosition
	attrNormal
	attrTexcoord
	attrColor
	attrRadius
	attrTangent
	attrEnd
)

var vertexSlots = map[string]vertexSlot{
	"x":         {attrPosition, 0},
	"y":         {attrPosition, 1},
	"z":         {attrPosition, 2},
	"nx":        {attrNormal, 0},
	"ny":        {attrNormal, 1},
	"nz":        {attrNormal, 2},
	"u":         {attrTexcoord, 0},
	"s":         {attrTexcoord, 0},
	"texture_u": {attrTexcoord, 0},
	"texture_s": {attrTexcoord, 0},
	"v":         {attrTexcoord, 1},
	"t":         {attrTexcoord, 1},
	"texture_v": {attrTexcoord, 1},
	"texture_t": {attrTexcoord, 1},
	"red":       {attrColor, 0},
	"green":     {attrColor, 1},
	"blue":      {attrColor, 2},
	"alpha":     {attrColor, 3},
	"radius":    {attrRadius, 0},
	"tx":        {attrTangent, 0},
	"ty":        {attrTangent, 1},
	"tz":        {attrTangent, 2},
	"tw":        {attrTangent, 3},
	"end":       {attrEnd, 0},
}

// ReadPLY parses an ascii or binary PLY stream.
func ReadPLY(r *bufio.Reader) (*Mesh, error) {
	encoding, elements, err := readPLYHeader(r)
	if err != nil {
		return nil, err
	}
	var values scalarReader
	switch encoding {
	case plyASCII:
		values = &asciiReader{r: r}
	case plyBinaryLE:
		values = NewDeserializer(r, binary.LittleEndian)
	case plyBinaryBE:
		values = NewDeserializer(r, binary.BigEndian)
	}

	m := &Mesh{}
	for _, element := range elements {
		switch element.name {
		case "vertex":
			err = readPLYVertices(values, element, m)
		case "face", "line", "point":
			err = readPLYLists(values, element, m)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			if d, ok := values.(*BinaryDeserializer); ok {
				return nil, fmt.Errorf("element %s at byte %d: %w", element.name, d.Pos(), err)
			}
			return nil, fmt.Errorf("element %s: %w", element.name, err)
		}
	}
	if err := checkPLYIndices(m); err != nil {
		return nil, err
	}
	return m, nil
}

func checkPLYIndices(m *Mesh) error {
	n := len(m.Positions)
	check := func(kind string, idx int) error {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: %s index %d with %d vertices", ErrPLYIndex, kind, idx, n)
		}
		return nil
	}
	for _, face := range m.Faces {
		for _, idx := range face {
			if err := check("face", idx); err != nil {
				return err
			}
		}
	}
	for _, line := range m.Lines {
		for _, idx := range line {
			if err := check("line", idx); err != nil {
				return err
			}
		}
	}
	for _, idx := range m.Points {
		if err := check("point", idx); err != nil {
			return err
		}
	}
	return nil
}

func readPLYVertices(values scalarReader, element *plyElement, m *Mesh) error {
	if len(element.properties) == 0 {
		return nil
	}
	n := element.count
	present := map[int]bool{}
	for _, prop := range element.properties {
		if !prop.list {
			present[vertexSlots[prop.name].attr] = true
		}
	}
	// grow while reading so a bogus count fails at end of input
	hint := min(n, plyPrealloc)
	if present[attrPosition] {
		m.Positions = make([]mgl32.Vec3, 0, hint)
	}
	if present[attrNormal] {
		m.Normals = make([]mgl32.Vec3, 0, hint)
	}
	if present[attrTexcoord] {
		m.Texcoords = make([]mgl32.Vec2, 0, hint)
	}
	if present[attrColor] {
		m.Colors = make([]mgl32.Vec4, 0, hint)
	}
	if present[attrRadius] {
		m.Radius = make([]float32, 0, hint)
	}
	if present[attrTangent] {
		m.Tangents = make([]mgl32.Vec4, 0, hint)
	}
	if present[attrEnd] {
		m.Ends = make([]uint8, 0, hint)
	}

	for i := 0; i < n; i++ {
		if present[attrPosition] {
			m.Positions = append(m.Positions, mgl32.Vec3{})
		}
		if present[attrNormal] {
			m.Normals = append(m.Normals, mgl32.Vec3{})
		}
		if present[attrTexcoord] {
			m.Texcoords = append(m.Texcoords, mgl32.Vec2{})
		}
		if present[attrColor] {
			m.Colors = append(m.Colors, mgl32.Vec4{0, 0, 0, 1})
		}
		if present[attrRadius] {
			m.Radius = append(m.Radius, 0)
		}
		if present[attrTangent] {
			m.Tangents = append(m.Tangents, mgl32.Vec4{})
		}
		if present[attrEnd] {
			m.Ends = append(m.Ends, 0)
		}
		for _, prop := range element.properties {
			if prop.list {
				if _, err := readPLYList(values, prop); err != nil {
					return err
				}
				continue
			}
			value, err := values.GetScalar(prop.kind)
			if err != nil {
				return err
			}
			slot := vertexSlots[prop.name]
			v := float32(value)
			switch slot.attr {
			case attrPosition:
				m.Positions[i][slot.channel] = v
			case attrNormal:
				m.Normals[i][slot.channel] = v
			case attrTexcoord:
				m.Texcoords[i][slot.channel] = v
			case attrColor:
				if prop.kind == uint8Kind {
					v /= 255
				} else if prop.kind == uint16Kind {
					v /= 65535
				}
				m.Colors[i][slot.channel] = v
			case attrRadius:
				m.Radius[i] = v
			case attrTangent:
				m.Tangents[i][slot.channel] = v
			case attrEnd:
				m.Ends[i] = uint8(value)
			}
		}
	}
	return nil
}

func readPLYList(values scalarReader, prop plyProperty) ([]int, error) {
	count, err := values.GetScalar(prop.countKind)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > math.MaxUint16 {
		return nil, fmt.Errorf("bad list size %v", count)
	}
	items := make([]int, int(count))
	for k := range items {
		v, err := values.GetScalar(prop.kind)
		if err != nil {
			return nil, err
		}
		items[k] = int(v)
	}
	return items, nil
}

func readPLYLists(values scalarReader, element *plyElement, m *Mesh) error {
	if len(element.properties) == 0 {
		return nil
	}
	for i := 0; i < element.count; i++ {
		for _, prop := range element.properties {
			if !prop.list {
				if _, err := values.GetScalar(prop.kind); err != nil {
					return err
				}
				continue
			}
			items, err := readPLYList(values, prop)
			if err != nil {
				return err
			}
			if prop.name != "vertex_indices" && prop.name != "vertex_index" {
				continue
			}
			switch element.name {
			case "face":
				m.Faces = append(m.Faces, items)
			case "line":
				for k := 1; k < len(items); k++ {
					m.Lines = append(m.Lines, [2]int{items[k-1], items[k]})
				}
			case "point":
				m.Points = append(m.Points, items...)
			}
		}
	}
	return nil
}

func skipPLYElement(values scalarReader, element *plyElement) error {
	if len(element.properties) == 0 {
		return nil
	}
	for i := 0; i < element.count; i++ {
		for _, prop := range element.properties {
			var err error
			if prop.list {
				_, err = readPLYList(values, prop)
			} else {
				_, err = values.GetScalar(prop.kind)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePLY writes m as binary little endian PLY.
func WritePLY(w io.Writer, m *Mesh) error {
	var header strings.Builder
	header.WriteString("ply\nformat binary_little_endian 1.0\ncomment Written by sceneio\n")
	fmt.Fprintf(&header, "element vertex %d\n", len(m.Positions))
	vertexProps := func(names ...string) {
		for _, name := range names {
			fmt.Fprintf(&header, "property float %s\n", name)
		}
	}
	vertexProps("x", "y", "z")
	if len(m.Normals) != 0 {
		vertexProps("nx", "ny", "nz")
	}
	if len(m.Texcoords) != 0 {
		vertexProps("u", "v")
	}
	if len(m.Colors) != 0 {
		vertexProps("red", "green", "blue", "alpha")
	}
	if len(m.Radius) != 0 {
		vertexProps("radius")
	}
	if len(m.Tangents) != 0 {
		vertexProps("tx", "ty", "tz", "tw")
	}
	if len(m.Ends) != 0 {
		header.WriteString("property uchar end\n")
	}
	listElement := func(name string, count int) {
		if count == 0 {
			return
		}
		fmt.Fprintf(&header, "element %s %d\nproperty list uchar int vertex_indices\n", name, count)
	}
	listElement("face", len(m.Faces))
	listElement("line", len(m.Lines))
	listElement("point", len(m.Points))
	header.WriteString("end_header\n")
	if _, err := io.WriteString(w, header.String()); err != nil {
		return err
	}

	le := binary.LittleEndian
	buf := make([]byte, 0, 64)
	floats := func(values ...float32) {
		for _, v := range values {
			buf = le.AppendUint32(buf, math.Float32bits(v))
		}
	}
	for i, p := range m.Positions {
		buf = buf[:0]
		floats(p[:]...)
		if len(m.Normals) != 0 {
			floats(m.Normals[i][:]...)
		}
		if len(m.Texcoords) != 0 {
			floats(m.Texcoords[i][:]...)
		}
		if len(m.Colors) != 0 {
			floats(m.Colors[i][:]...)
		}
		if len(m.Radius) != 0 {
			floats(m.Radius[i])
		}
		if len(m.Tangents) != 0 {
			floats(m.Tangents[i][:]...)
		}
		if len(m.Ends) != 0 {
			buf = append(buf, m.Ends[i])
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	list := func(items ...int) error {
		if len(items) > math.MaxUint8 {
			return ErrPLYFaceSize
		}
		buf = append(buf[:0], uint8(len(items)))
		for _, v := range items {
			buf = le.AppendUint32(buf, uint32(int32(v)))
		}
		_, err := w.Write(buf)
		return err
	}
	for _, face := range m.Faces {
		if err := list(face...); err != nil {
			return err
		}
	}
	for _, line := range m.Lines {
		if err := list(line[:]...); err != nil {
			return err
		}
	}
	for _, point := range m.Points {
		if err := list(point); err != nil {
			return err
		}
	}
	return nil
}
