package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/geometry"
)

// UIIcon is a decorative textured quad. Its scale is in pixels so icons keep
// their size when the window changes. Icons are never hit targets.
type UIIcon struct {
	Common[*UIIcon]
}

func Icon(position [2]float32, pixelScale [2]float32, color colors.Color, texture string) *UIIcon {
	i := &UIIcon{}
	b := newBase(position, pixelScale, color, geometry.Quad)
	b.pixelScale = true
	b.texture = texture
	i.Common = newCommon(i, b)
	return i
}

func (i *UIIcon) IsWithinBounds(cursor, pos, scale [2]float32) bool { return false }
