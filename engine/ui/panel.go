package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/geometry"
)

// UIPanel is a flat quad. A panel claimed at TitleBarID through AddWithID
// doubles as the window's drag handle.
type UIPanel struct {
	Common[*UIPanel]
	titleBar bool
}

func Panel(position, scale [2]float32, color colors.Color) *UIPanel {
	p := &UIPanel{}
	p.Common = newCommon(p, newBase(position, scale, color, geometry.Quad))
	return p
}

func (p *UIPanel) HandleClick() InteractionResult {
	if p.titleBar {
		return Propagate(TitleBar())
	}
	return InteractionResult{}
}
