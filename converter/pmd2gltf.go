package converter

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/pmdmesh/geom"
	"github.com/binzume/pmdmesh/mmd"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const unlitMaterialExt = "KHR_materials_unlit"

type PMDToGLTFOption struct {
	Scale      float32 `yaml:"scale"` // Default: 0.08
	ForceUnlit bool    `yaml:"unlit"`
	// Grounding moves the model so that its feet are on the origin.
	Grounding bool `yaml:"grounding"`

	TextureReCompress      bool    `yaml:"textureReCompress"`
	TextureBytesThreshold  int64   `yaml:"textureBytesThreshold"`  // 0: unlimited
	TextureResolutionLimit int     `yaml:"textureResolutionLimit"` // 0: unlimited
	TextureScale           float32 `yaml:"textureScale"`

	// AlphaCutoff is used for cutout materials. Default: 0.5
	AlphaCutoff float32 `yaml:"alphaCutoff"`
}

type pmdToGltf struct {
	*PMDToGLTFOption
	*gltf.Document
}

func NewPMDToGLTFConverter(options *PMDToGLTFOption) *pmdToGltf {
	if options == nil {
		options = &PMDToGLTFOption{}
	}
	if options.Scale == 0 {
		options.Scale = 0.08
	}
	if options.TextureScale == 0 {
		options.TextureScale = 1.0
	}
	if options.AlphaCutoff == 0 {
		options.AlphaCutoff = 0.5
	}
	return &pmdToGltf{
		PMDToGLTFOption: options,
		Document:        gltf.NewDocument(),
	}
}

// addTexture embeds a texture image and returns its texture index.
func (m *pmdToGltf) addTexture(texture string, textures *textureCache) (*uint32, error) {
	t := textures.get(texture)
	if t.id != nil {
		return t.id, nil
	}
	ext := strings.ToLower(filepath.Ext(texture))

	encode := m.TextureReCompress || m.TextureScale != 1.0 || m.TextureResolutionLimit > 0
	if m.TextureBytesThreshold > 0 {
		stat, err := os.Stat(textures.path(texture))
		if err != nil {
			return nil, err
		}
		if stat.Size() > m.TextureBytesThreshold {
			encode = true
		}
	}

	var mimeType string
	if ext == ".jpg" || ext == ".jpeg" {
		mimeType = "image/jpeg"
	} else if ext == ".png" {
		mimeType = "image/png"
	} else {
		// bmp, tga, psd, ...
		mimeType = "image/png"
		encode = true
	}

	var r io.Reader
	if encode {
		r2, err := scaleTexture(texture, mimeType, textures, m.TextureScale, m.TextureResolutionLimit)
		if err != nil {
			return nil, err
		}
		r = r2
	} else {
		f, err := os.Open(textures.path(texture))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	img, err := modeler.WriteImage(m.Document, filepath.Base(texture), mimeType, r)
	if err != nil {
		return nil, err
	}
	m.Buffers[0].ByteLength = uint32(len(m.Buffers[0].Data)) // avoid AddImage bug
	m.Textures = append(m.Textures,
		&gltf.Texture{Sampler: gltf.Index(0), Source: gltf.Index(img)})

	t.id = gltf.Index(uint32(len(m.Textures)) - 1)

	return t.id, nil
}

func (m *pmdToGltf) convertMaterial(index int, mat *mmd.Material, textures *textureCache) *gltf.Material {
	var rf float32 = 0.9
	var mf float32 = 0
	mm := &gltf.Material{
		Name: fmt.Sprintf("mat%d", index+1),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z, mat.Alpha},
			RoughnessFactor: &rf,
			MetallicFactor:  &mf,
		},
		DoubleSided: mat.Alpha < 1,
	}

	names := mat.TextureNames()
	texture := names.Texture()
	blend := mat.Blend()
	switch blend {
	case mmd.BlendCutout:
		if textures.hasAlpha(texture) {
			cutoff := m.AlphaCutoff
			mm.AlphaMode = gltf.AlphaMask
			mm.AlphaCutoff = &cutoff
		} else {
			mm.AlphaMode = gltf.AlphaOpaque
		}
	case mmd.BlendAlpha, mmd.BlendPremultiplied:
		mm.AlphaMode = gltf.AlphaBlend
	default:
		mm.AlphaMode = gltf.AlphaOpaque
	}
	if m.ForceUnlit {
		mm.Extensions = map[string]interface{}{unlitMaterialExt: map[string]string{}}
	}

	extras := map[string]interface{}{
		"blend":       blend.String(),
		"renderQueue": blend.RenderQueue(),
		"toon":        mat.ToonTexture(),
		"edge":        mat.Edge != 0,
	}
	if sphere, mode := names.SphereMap(); mode != mmd.SphereNone {
		extras["sphere"] = sphere
	}
	mm.Extras = extras

	if texture != "" {
		if tex, err := m.addTexture(texture, textures); err == nil {
			mm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{
				Index: *tex,
			}
		} else {
			log.Print("Texture read error:", err)
		}
	}
	return mm
}

// convertMesh writes the shared vertex attributes once and one primitive per
// non-empty submesh. PMD is left-handed, so Z is flipped and the winding reversed.
func (m *pmdToGltf) convertMesh(doc *mmd.Document) *gltf.Mesh {
	s := m.Scale
	mat := geom.NewScaleMatrix4(s, s, -s)
	if box := doc.Bounds(); m.Grounding && !box.IsEmpty() {
		c := box.Center()
		mat = mat.Mul(geom.NewTranslateMatrix4(-c.X, -box.Min.Y, -c.Z))
	}
	normalMat := mat.NormalMatrix()

	vertexes := make([][3]float32, len(doc.Vertices))
	normals := make([][3]float32, len(doc.Vertices))
	texcood0 := make([][2]float32, len(doc.Vertices))
	for i := range doc.Vertices {
		v := &doc.Vertices[i]
		mat.ApplyTo(&v.Pos).ToArray(vertexes[i][:])
		normalMat.ApplyToDirection(&v.Normal).Normalize().ToArray(normals[i][:])
		v.UV.ToArray(texcood0[i][:]) // glTF also uses a top-left origin
	}

	attributes := map[string]uint32{
		"POSITION":   modeler.WritePosition(m.Document, vertexes),
		"NORMAL":     modeler.WriteNormal(m.Document, normals),
		"TEXCOORD_0": modeler.WriteTextureCoord(m.Document, texcood0),
	}

	var primitives []*gltf.Primitive
	for _, sm := range doc.Submeshes {
		if sm.TriangleCount() == 0 {
			continue
		}
		indices := make([]uint32, 0, len(sm.Indices))
		for i := 0; i < sm.TriangleCount(); i++ {
			f := sm.Triangle(i)
			indices = append(indices, uint32(f[2]), uint32(f[1]), uint32(f[0]))
		}
		primitives = append(primitives, &gltf.Primitive{
			Indices:    gltf.Index(modeler.WriteIndices(m.Document, indices)),
			Attributes: attributes,
			Material:   gltf.Index(uint32(sm.Material)),
		})
	}

	return &gltf.Mesh{
		Name:       doc.Name(),
		Primitives: primitives,
	}
}

// Convert builds a glTF document from doc. Textures are loaded from textureDir.
func (m *pmdToGltf) Convert(doc *mmd.Document, textureDir string) (*gltf.Document, error) {
	if doc.Header == nil {
		return nil, fmt.Errorf("converter: document has no header")
	}

	textures := newTextureCache(textureDir)
	useUnlit := false
	for i, mat := range doc.Materials {
		mm := m.convertMaterial(i, mat, textures)
		if mm.Extensions[unlitMaterialExt] != nil {
			useUnlit = true
		}
		m.Document.Materials = append(m.Document.Materials, mm)
	}
	if useUnlit {
		m.ExtensionsUsed = append(m.ExtensionsUsed, unlitMaterialExt)
	}
	if len(m.Document.Textures) > 0 {
		m.Document.Samplers = []*gltf.Sampler{{}}
	}

	node := &gltf.Node{Name: doc.Name()}
	if len(doc.Vertices) > 0 {
		m.Document.Meshes = append(m.Document.Meshes, m.convertMesh(doc))
		node.Mesh = gltf.Index(uint32(len(m.Document.Meshes) - 1))
	}
	m.Nodes = append(m.Nodes, node)
	m.Scenes[0].Nodes = append(m.Scenes[0].Nodes, uint32(len(m.Nodes)-1))

	return m.Document, nil
}
