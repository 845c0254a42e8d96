package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/geometry"
)

// UIButton is a clickable quad. It either runs a local callback or emits a
// UiEvent for the window-level handler.
type UIButton struct {
	Common[*UIButton]
	onClick func()
	emit    func() UiEvent
}

// Button runs onClick when clicked and reports Success.
func Button(position, scale [2]float32, color colors.Color, onClick func()) *UIButton {
	b := &UIButton{onClick: onClick}
	b.Common = newCommon(b, newBase(position, scale, color, geometry.Quad))
	return b
}

// PropButton propagates the event returned by emit when clicked.
func PropButton(position, scale [2]float32, color colors.Color, emit func() UiEvent) *UIButton {
	b := &UIButton{emit: emit}
	b.Common = newCommon(b, newBase(position, scale, color, geometry.Quad))
	return b
}

func (b *UIButton) HandleClick() InteractionResult {
	switch {
	case b.emit != nil:
		return Propagate(b.emit())
	case b.onClick != nil:
		b.onClick()
		return Success()
	default:
		return InteractionResult{}
	}
}

func (b *UIButton) SetHighlight(alpha float32) bool { return b.highlight(alpha) }
