package mmd

import (
	"io"
	"os"
)

// Options controls how strictly a file is checked.
// The zero value is lenient: semantic problems are collected in Document.Issues.
type Options struct {
	// Strict aborts on the first semantic issue, including a bad magic.
	Strict bool `yaml:"strict"`
	// CheckMagic rejects files without the "Pmd" tag even when not strict.
	CheckMagic bool `yaml:"checkMagic"`
	// FailOnUnderrun treats index entries left over after the last material as fatal.
	FailOnUnderrun bool `yaml:"failOnUnderrun"`
}

// PMDParser is parser for .pmd model.
type PMDParser struct {
	baseParser
	opts Options
}

// NewPMDParser returns new parser. data must not be modified while parsing.
func NewPMDParser(data []byte, opts *Options) *PMDParser {
	p := &PMDParser{baseParser: baseParser{data: data}}
	if opts != nil {
		p.opts = *opts
	}
	return p
}

func (p *PMDParser) readHeader() *Header {
	p.section = "header"
	var h Header
	h.Format = p.readText(len(Magic))
	h.Version = p.readFloat()
	h.Name = p.readText(NameSize)
	h.Comment = p.readText(CommentSize)
	return &h
}

func (p *PMDParser) readVertex(v *Vertex) {
	v.Pos = p.readVector3()
	v.Normal = p.readVector3()
	v.UV = p.readVector2()
	v.Bones[0] = p.readUint16()
	v.Bones[1] = p.readUint16()
	v.Weight = p.readUint8()
	v.Edge = p.readUint8()
}

func (p *PMDParser) readVertices() []Vertex {
	p.section = "vertices"
	n := int(p.readUint32())
	vertices := make([]Vertex, 0, p.capHint(n, VertexSize))
	for i := 0; i < n && p.err == nil; i++ {
		var v Vertex
		p.readVertex(&v)
		vertices = append(vertices, v)
	}
	return vertices
}

func (p *PMDParser) readIndices() []uint16 {
	p.section = "indices"
	n := int(p.readUint32())
	indices := make([]uint16, 0, p.capHint(n, 2))
	for i := 0; i < n && p.err == nil; i++ {
		indices = append(indices, p.readUint16())
	}
	return indices
}

func (p *PMDParser) readMaterial() *Material {
	var m Material
	m.Diffuse = p.readVector3()
	m.Alpha = p.readFloat()
	m.Specularity = p.readFloat()
	m.Specular = p.readVector3()
	m.Ambient = p.readVector3()
	m.Toon = p.readUint8()
	m.Edge = p.readUint8()
	m.Count = p.readUint32()
	m.Texture = p.readText(TextureNameSize)
	return &m
}

func (p *PMDParser) readMaterials() []*Material {
	p.section = "materials"
	n := int(p.readUint32())
	materials := make([]*Material, 0, p.capHint(n, MaterialSize))
	for i := 0; i < n && p.err == nil; i++ {
		materials = append(materials, p.readMaterial())
	}
	return materials
}

// Parse model data.
func (p *PMDParser) Parse() (*Document, error) {
	var doc Document

	doc.Header = p.readHeader()
	if p.err != nil {
		return nil, p.err
	}
	if !doc.Header.ValidMagic() {
		if p.opts.Strict || p.opts.CheckMagic {
			return nil, &ParseError{Section: "header", Offset: 0, Err: ErrBadMagic}
		}
		doc.Issues = append(doc.Issues, &Issue{Err: ErrBadMagic, Material: -1})
	}

	vertices := p.readVertices()
	if p.err != nil {
		return nil, p.err
	}

	indices := p.readIndices()
	if p.err != nil {
		return nil, p.err
	}

	materials := p.readMaterials()
	if p.err != nil {
		return nil, p.err
	}

	// Bones, IK and morphs follow; they are not decoded.

	asm, err := Assemble(len(vertices), indices, materials, &p.opts)
	if err != nil {
		return nil, err
	}
	doc.Vertices = vertices
	doc.Indices = asm.Indices
	doc.Materials = materials
	doc.Submeshes = asm.Submeshes
	doc.Issues = append(doc.Issues, asm.Issues...)
	return &doc, nil
}

// Parse decodes a .pmd file held in memory. A nil opts parses leniently.
// Documents returned in lenient mode may carry Issues.
func Parse(data []byte, opts *Options) (*Document, error) {
	return NewPMDParser(data, opts).Parse()
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, opts *Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}

// Open parses the file at path. The file is closed before Open returns.
func Open(path string, opts *Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f, opts)
}
