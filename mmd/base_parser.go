package mmd

import (
	"encoding/binary"
	"math"
)

// baseParser is a forward-only little-endian reader over an in-memory buffer.
// The first failed read is sticky: later reads return zero values and err
// keeps the offset where decoding stopped.
type baseParser struct {
	data    []byte
	pos     int
	section string
	err     error
}

func (p *baseParser) fail(n int) {
	if p.err == nil {
		p.err = &ParseError{Section: p.section, Offset: p.pos, Need: n, Err: ErrTruncatedInput}
	}
}

func (p *baseParser) remaining() int {
	return len(p.data) - p.pos
}

// capHint bounds a record count read from the file by what the rest of the
// buffer can hold.
func (p *baseParser) capHint(count, size int) int {
	if count < 0 {
		return 0
	}
	if max := p.remaining() / size; count > max {
		return max
	}
	return count
}

func (p *baseParser) readFixed(n int) []byte {
	if p.err != nil {
		return nil
	}
	if n < 0 || p.remaining() < n {
		p.fail(n)
		return nil
	}
	b := p.data[p.pos : p.pos+n : p.pos+n]
	p.pos += n
	return b
}

func (p *baseParser) readUint8() uint8 {
	b := p.readFixed(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (p *baseParser) readUint16() uint16 {
	b := p.readFixed(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (p *baseParser) readUint32() uint32 {
	b := p.readFixed(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (p *baseParser) readFloat() float32 {
	return math.Float32frombits(p.readUint32())
}

func (p *baseParser) readVector2() Vector2 {
	return Vector2{X: p.readFloat(), Y: p.readFloat()}
}

func (p *baseParser) readVector3() Vector3 {
	return Vector3{X: p.readFloat(), Y: p.readFloat(), Z: p.readFloat()}
}

// readText reads a fixed-width text field. The returned Text owns its bytes.
func (p *baseParser) readText(n int) Text {
	b := p.readFixed(n)
	if b == nil {
		return nil
	}
	t := make(Text, n)
	copy(t, b)
	return t
}
