package mmd

import (
	"fmt"
	"path"
	"strings"
)

// SphereMode is how a sphere map is combined with the base color.
type SphereMode uint8

const (
	SphereNone SphereMode = iota
	SphereMultiply
	SphereAdd
)

// TextureNames is the texture field split at "*".
// The field holds a texture, a sphere map, or "texture*spheremap".
type TextureNames struct {
	Primary   string
	Secondary string
}

func SplitTextureName(name string) TextureNames {
	tex := strings.SplitN(name, "*", 2)
	if len(tex) == 1 {
		return TextureNames{Primary: tex[0]}
	}
	return TextureNames{Primary: tex[0], Secondary: tex[1]}
}

// Texture returns the name that is not a sphere map.
func (t TextureNames) Texture() string {
	if t.Primary != "" && sphereMode(t.Primary) == SphereNone {
		return t.Primary
	}
	if t.Secondary != "" && sphereMode(t.Secondary) == SphereNone {
		return t.Secondary
	}
	return ""
}

// SphereMap returns the sphere map name and mode, if any.
func (t TextureNames) SphereMap() (string, SphereMode) {
	if m := sphereMode(t.Primary); m != SphereNone {
		return t.Primary, m
	}
	if m := sphereMode(t.Secondary); m != SphereNone {
		return t.Secondary, m
	}
	return "", SphereNone
}

func sphereMode(name string) SphereMode {
	switch strings.ToLower(path.Ext(name)) {
	case ".sph":
		return SphereMultiply
	case ".spa":
		return SphereAdd
	}
	return SphereNone
}

// AssetKey returns the name without its extension.
func AssetKey(name string) string {
	return strings.SplitN(name, ".", 2)[0]
}

// ToonTextureName maps a material toon index to the shared toon texture.
// 0xFF is toon0.bmp, 0x00 is toon01.bmp ... 0x09 is toon10.bmp.
func ToonTextureName(toon uint8) string {
	if toon == 0xFF {
		return "toon0.bmp"
	}
	if toon > 9 {
		return ""
	}
	return fmt.Sprintf("toon%02d.bmp", int(toon)+1)
}
