package mmd

import (
	"path"
	"strings"
)

// BlendIntent is the blending a material asks for. Mapping it to pipeline
// state is up to the renderer.
type BlendIntent int

const (
	BlendOpaque BlendIntent = iota
	BlendCutout
	BlendAlpha
	BlendPremultiplied
)

// OpaqueAlphaThreshold is the lowest alpha still treated as opaque.
var OpaqueAlphaThreshold float32 = 0.99

var blendNames = [...]string{"opaque", "cutout", "alpha", "premultiplied"}

func (b BlendIntent) String() string {
	if b < 0 || int(b) >= len(blendNames) {
		return "unknown"
	}
	return blendNames[b]
}

// RenderQueue is the suggested draw order: -1 keeps the renderer default,
// cutout draws after opaque geometry and blended materials last.
func (b BlendIntent) RenderQueue() int {
	switch b {
	case BlendCutout:
		return 2450
	case BlendAlpha, BlendPremultiplied:
		return 3000
	}
	return -1
}

// ClassifyBlend decides the blend intent of a material.
// emptyName is set when the texture has no usable asset name.
func ClassifyBlend(alpha float32, texture string, emptyName bool) BlendIntent {
	switch {
	case alpha < OpaqueAlphaThreshold && emptyName:
		return BlendPremultiplied
	case alpha < OpaqueAlphaThreshold:
		return BlendAlpha
	case !emptyName && hasAlphaChannel(texture):
		return BlendCutout
	}
	return BlendOpaque
}

// hasAlphaChannel reports whether the image format can carry alpha.
func hasAlphaChannel(texture string) bool {
	switch strings.ToLower(path.Ext(texture)) {
	case ".png", ".tga", ".psd", ".dds":
		return true
	}
	return false
}
