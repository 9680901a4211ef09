package mmd

import (
	"bytes"

	"github.com/binzume/pmdmesh/geom"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

type Vector2 = geom.Vector2
type Vector3 = geom.Vector3

// Record sizes in bytes.
const (
	HeaderSize   = 3 + 4 + 20 + 256
	VertexSize   = 4*3 + 4*3 + 4*2 + 2*2 + 1 + 1
	MaterialSize = 4*3 + 4 + 4 + 4*3 + 4*3 + 1 + 1 + 4 + 20

	NameSize        = 20
	CommentSize     = 256
	TextureNameSize = 20
)

// Magic is the format tag at the start of every file.
const Magic = "Pmd"

// Text is a fixed-width text field as stored in the file.
// The bytes are kept verbatim, including anything after the first nul.
type Text []byte

// NewText encodes s as Shift_JIS into a field of the given width.
// Longer names are cut at the width.
func NewText(s string, width int) Text {
	t := make(Text, width)
	b, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		b = []byte(s)
	}
	copy(t, b)
	return t
}

// Bytes returns the content up to the first nul, or the whole field.
func (t Text) Bytes() []byte {
	if i := bytes.IndexByte(t, 0); i >= 0 {
		return t[:i]
	}
	return t
}

// String decodes the field as Shift_JIS. Undecodable input is returned as is.
func (t Text) String() string {
	b := t.Bytes()
	utf8Data, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(utf8Data)
}

type Header struct {
	Format  []byte // "Pmd"
	Version float32
	Name    Text
	Comment Text
}

func (h *Header) ValidMagic() bool {
	return string(h.Format) == Magic
}

// Vertex is a 38 byte vertex record.
//
// UV uses a top-left origin. Consumers with a bottom-left origin must
// use 1-V (see geom.Vector2.FlipV).
type Vertex struct {
	Pos    Vector3
	Normal Vector3
	UV     Vector2
	Bones  [2]uint16
	Weight uint8 // influence of Bones[0] in percent; Bones[1] gets 100-Weight
	Edge   uint8 // 0: edge enabled, 1: edge disabled
}

// BoneWeights returns the weights of Bones in the range 0..1.
func (v *Vertex) BoneWeights() [2]float32 {
	w := float32(v.Weight) / 100
	return [2]float32{w, 1 - w}
}

// Material is a 70 byte material record.
type Material struct {
	Diffuse     Vector3
	Alpha       float32
	Specularity float32
	Specular    Vector3
	Ambient     Vector3
	Toon        uint8
	Edge        uint8
	Count       uint32 // number of index table entries, not triangles
	Texture     Text
}

// TextureNames splits the texture field into its primary and secondary names.
func (m *Material) TextureNames() TextureNames {
	return SplitTextureName(m.Texture.String())
}

// ToonTexture returns the shared toon texture selected by Toon.
func (m *Material) ToonTexture() string {
	return ToonTextureName(m.Toon)
}

// Blend classifies the material from its alpha and texture name.
func (m *Material) Blend() BlendIntent {
	tex := m.TextureNames().Texture()
	return ClassifyBlend(m.Alpha, tex, AssetKey(tex) == "")
}

// Submesh is the part of the index table drawn with one material.
type Submesh struct {
	Material int
	Offset   int // start position in the raw index table
	Indices  []uint16
}

func (s *Submesh) TriangleCount() int {
	return len(s.Indices) / 3
}

func (s *Submesh) Triangle(i int) [3]uint16 {
	return [3]uint16{s.Indices[i*3], s.Indices[i*3+1], s.Indices[i*3+2]}
}

// Document is a parsed model. It holds no reference to the input buffer and
// must be treated as read-only; it can be shared between goroutines.
type Document struct {
	Header    *Header
	Vertices  []Vertex
	Indices   []uint16
	Materials []*Material
	Submeshes []*Submesh
	Issues    IssueList
}

func (d *Document) Name() string {
	return d.Header.Name.String()
}

func (d *Document) Comment() string {
	return d.Header.Comment.String()
}

// Err returns the collected issues as an error, or nil.
func (d *Document) Err() error {
	if len(d.Issues) == 0 {
		return nil
	}
	return d.Issues
}

func (d *Document) Bounds() *geom.Box {
	var box geom.Box
	for i := range d.Vertices {
		box.Extend(&d.Vertices[i].Pos)
	}
	return &box
}

func (d *Document) SubmeshBounds(i int) *geom.Box {
	var box geom.Box
	for _, vi := range d.Submeshes[i].Indices {
		box.Extend(&d.Vertices[vi].Pos)
	}
	return &box
}
