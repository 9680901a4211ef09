package mmd

import (
	"bufio"
	"encoding/binary"
	"io"
)

type baseWriter struct {
	w   io.Writer
	err error
}

func (p *baseWriter) write(v interface{}) {
	if p.err == nil {
		p.err = binary.Write(p.w, binary.LittleEndian, v)
	}
}

func (p *baseWriter) writeUint8(v uint8) {
	p.write(&v)
}

func (p *baseWriter) writeUint16(v uint16) {
	p.write(&v)
}

func (p *baseWriter) writeUint32(v uint32) {
	p.write(&v)
}

func (p *baseWriter) writeFloat(v float32) {
	p.write(&v)
}

// writeText writes t padded with nul or cut to width bytes.
func (p *baseWriter) writeText(t []byte, width int) {
	b := make([]byte, width)
	copy(b, t)
	p.write(b)
}

// PMDWriter is writer for .pmd data.
// Only the sections the parser reads are written, so bones, IK and morphs
// are empty in the output.
type PMDWriter struct {
	baseWriter
}

func NewPMDWriter(w io.Writer) *PMDWriter {
	return &PMDWriter{baseWriter: baseWriter{w: w}}
}

func (w *PMDWriter) Write(doc *Document) error {
	w.writeHeader(doc.Header)

	w.writeUint32(uint32(len(doc.Vertices)))
	for i := range doc.Vertices {
		w.writeVertex(&doc.Vertices[i])
	}

	w.writeUint32(uint32(len(doc.Indices)))
	w.write(doc.Indices)

	w.writeUint32(uint32(len(doc.Materials)))
	for _, m := range doc.Materials {
		w.writeMaterial(m)
	}

	// bones, IK, morphs
	w.writeUint16(0)
	w.writeUint16(0)
	w.writeUint16(0)

	return w.err
}

func (w *PMDWriter) writeHeader(h *Header) {
	w.writeText(h.Format, len(Magic))
	w.writeFloat(h.Version)
	w.writeText(h.Name, NameSize)
	w.writeText(h.Comment, CommentSize)
}

func (w *PMDWriter) writeVertex(v *Vertex) {
	w.write(&v.Pos)
	w.write(&v.Normal)
	w.write(&v.UV)
	w.write(&v.Bones)
	w.writeUint8(v.Weight)
	w.writeUint8(v.Edge)
}

func (w *PMDWriter) writeMaterial(m *Material) {
	w.write(&m.Diffuse)
	w.writeFloat(m.Alpha)
	w.writeFloat(m.Specularity)
	w.write(&m.Specular)
	w.write(&m.Ambient)
	w.writeUint8(m.Toon)
	w.writeUint8(m.Edge)
	w.writeUint32(m.Count)
	w.writeText(m.Texture, TextureNameSize)
}

// Write writes doc as .pmd.
func Write(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	if err := NewPMDWriter(bw).Write(doc); err != nil {
		return err
	}
	return bw.Flush()
}
