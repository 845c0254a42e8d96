package ui

import (
	"time"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/geometry"
)

const DefaultFontSize float32 = 16

// UILabel is static text centered on its position. It is purely decorative:
// never a hover or click target.
type UILabel struct {
	Common[*UILabel]
	text     string
	fontSize float32
	bounds   [2]float32
	wrap     bool
}

func Label(str string, position, scale [2]float32, color colors.Color) *UILabel {
	l := &UILabel{text: str, fontSize: DefaultFontSize}
	l.Common = newCommon(l, newBase(position, scale, color, geometry.LabelQuad))
	return l
}

func (l *UILabel) FontSize(size float32) *UILabel { l.fontSize = size; return l }

// Wrap bounds the text to a w x h pixel box; lines break at w.
func (l *UILabel) Wrap(w, h float32) *UILabel {
	l.bounds = [2]float32{w, h}
	l.wrap = w > 0
	return l
}

func (l *UILabel) Text() string { return l.text }

func (l *UILabel) IsWithinBounds(cursor, pos, scale [2]float32) bool { return false }

func (l *UILabel) RenderText(time.Time) string    { return l.text }
func (l *UILabel) TextSize() float32              { return l.fontSize }
func (l *UILabel) TextColor() colors.Color        { return l.color }
func (l *UILabel) WrapBounds() ([2]float32, bool) { return l.bounds, l.wrap }

func (l *UILabel) TextPosition(window [2]float32, m TextMeasurer, _ time.Time) [2]float32 {
	return centerText(l.Position(window), l.text, l.fontSize, l.bounds, l.wrap, m)
}

func centerText(center [2]float32, s string, size float32, bounds [2]float32, wrap bool, m TextMeasurer) [2]float32 {
	if m == nil || s == "" {
		return center
	}
	var maxW float32
	if wrap {
		maxW = bounds[0]
	}
	w, h := m.Measure(s, size, maxW)
	return [2]float32{center[0] - w/2, center[1] - h/2}
}
