package meshio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

type reader interface {
	io.ByteReader
	io.Reader
}

// BinaryDeserializer reads fixed size scalars in a given byte order and
// tracks the stream position for error reporting.
type BinaryDeserializer struct {
	_r       reader
	order    binary.ByteOrder
	position int
	scratch  [8]byte
}

func NewDeserializer(r reader, order binary.ByteOrder) *BinaryDeserializer {
	return &BinaryDeserializer{
		_r:    r,
		order: order,
	}
}

// Pos current position in the stream
func (d *BinaryDeserializer) Pos() int {
	return d.position
}

func (d *BinaryDeserializer) Read(b []byte) (n int, err error) {
	n, err = d._r.Read(b)
	d.position += n
	return
}

func (d *BinaryDeserializer) ReadByte() (b byte, err error) {
	b, err = d._r.ReadByte()
	if err != nil {
		return b, err
	}
	d.position += 1
	return
}

func (d *BinaryDeserializer) fill(size int) (buf []byte, err error) {
	buf = d.scratch[:size]
	_, err = io.ReadFull(d, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

// GetScalar reads one value of a ply scalar type and widens it to float64.
func (d *BinaryDeserializer) GetScalar(kind scalarKind) (result float64, err error) {
	buf, err := d.fill(kind.size())
	if err != nil {
		return
	}
	switch kind {
	case int8Kind:
		result = float64(int8(buf[0]))
	case uint8Kind:
		result = float64(buf[0])
	case int16Kind:
		result = float64(int16(d.order.Uint16(buf)))
	case uint16Kind:
		result = float64(d.order.Uint16(buf))
	case int32Kind:
		result = float64(int32(d.order.Uint32(buf)))
	case uint32Kind:
		result = float64(d.order.Uint32(buf))
	case float32Kind:
		result = float64(math.Float32frombits(d.order.Uint32(buf)))
	case float64Kind:
		result = math.Float64frombits(d.order.Uint64(buf))
	default:
		err = fmt.Errorf("unknown scalar type, position: %d", d.position)
	}
	return
}
