package mmd

import (
	"bytes"
	"testing"
)

func TestTextureNames(t *testing.T) {
	tests := []struct {
		field   string
		texture string
		sphere  string
		mode    SphereMode
		key     string
	}{
		{"", "", "", SphereNone, ""},
		{"face.bmp", "face.bmp", "", SphereNone, "face"},
		{"hair.png*light.sph", "hair.png", "light.sph", SphereMultiply, "hair"},
		{"metal.spa", "", "metal.spa", SphereAdd, ""},
		{"env.SPH*body.tga", "body.tga", "env.SPH", SphereMultiply, "body"},
		{"eye.l.bmp", "eye.l.bmp", "", SphereNone, "eye"},
	}
	for _, test := range tests {
		names := SplitTextureName(test.field)
		sphere, mode := names.SphereMap()
		if names.Texture() != test.texture || sphere != test.sphere || mode != test.mode {
			t.Error("SplitTextureName", test.field, names, sphere, mode)
		}
		if key := AssetKey(names.Texture()); key != test.key {
			t.Error("AssetKey", test.field, key)
		}
	}
}

func TestTextFields(t *testing.T) {
	raw := []byte("tex.bmp*a.sph\x00junk!!")
	m := &Material{Texture: Text(raw)}
	if !bytes.Equal(m.Texture, raw) {
		t.Error("raw bytes changed")
	}
	if m.Texture.String() != "tex.bmp*a.sph" {
		t.Error("String()", m.Texture.String())
	}
	if m.TextureNames().Primary != "tex.bmp" || m.TextureNames().Secondary != "a.sph" {
		t.Error("TextureNames()", m.TextureNames())
	}

	full := Text("abcdefghijklmnopqrst")
	if full.String() != "abcdefghijklmnopqrst" {
		t.Error("field without terminator", full.String())
	}

	if s := NewText("ミク", NameSize).String(); s != "ミク" {
		t.Error("Shift_JIS round trip", s)
	}
	if len(NewText("a very long name that does not fit", NameSize)) != NameSize {
		t.Error("NewText width")
	}
}

func TestToonTextureName(t *testing.T) {
	tests := map[uint8]string{
		0xFF: "toon0.bmp",
		0x00: "toon01.bmp",
		0x04: "toon05.bmp",
		0x09: "toon10.bmp",
		0x0A: "",
	}
	for toon, name := range tests {
		if n := ToonTextureName(toon); n != name {
			t.Error("ToonTextureName", toon, n)
		}
	}
	if (&Material{Toon: 0xFF}).ToonTexture() != "toon0.bmp" {
		t.Error("Material.ToonTexture()")
	}
}

func TestClassifyBlend(t *testing.T) {
	tests := []struct {
		alpha   float32
		texture string
		empty   bool
		blend   BlendIntent
	}{
		{1, "", true, BlendOpaque},
		{1, "face.bmp", false, BlendOpaque},
		{1, "hair.png", false, BlendCutout},
		{1, "hair.TGA", false, BlendCutout},
		{0.5, "glass.bmp", false, BlendAlpha},
		{0.5, "", true, BlendPremultiplied},
	}
	for _, test := range tests {
		if b := ClassifyBlend(test.alpha, test.texture, test.empty); b != test.blend {
			t.Error("ClassifyBlend", test, b)
		}
	}

	if BlendOpaque.RenderQueue() != -1 || BlendCutout.RenderQueue() != 2450 || BlendAlpha.RenderQueue() != 3000 {
		t.Error("RenderQueue")
	}
	if BlendPremultiplied.String() != "premultiplied" {
		t.Error("String()", BlendPremultiplied)
	}

	m := &Material{Alpha: 0.8, Texture: NewText("*env.sph", TextureNameSize)}
	if m.Blend() != BlendPremultiplied {
		t.Error("Material.Blend()", m.Blend())
	}
}
