package ui

import (
	"math"
	"time"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/geometry"
)

// ID is an element's identity inside one Interface.
type ID uint32

const (
	// NoID is never assigned; it stands for "no element".
	NoID ID = math.MaxUint32
	// TitleBarID is the reserved id of the title-bar panel. Clicking it
	// starts a window drag.
	TitleBarID ID = 0
)

// Extents holds the half-extents of an element box: left, right, top, bottom.
type Extents [4]float32

// Element is a single UI primitive. The set of variants is closed:
// *UIPanel, *UIButton, *UILabel, *UIIcon and *UITextBox.
type Element interface {
	ID() ID
	GeometryType() geometry.Type
	// Position is the absolute center for the given window size.
	Position(window [2]float32) [2]float32
	// Scale is the absolute size for the given window size.
	Scale(window [2]float32) [2]float32
	Color() colors.Color
	TextureName() string

	IsWithinBounds(cursor, pos, scale [2]float32) bool
	// LayerCompare reports whether the element is no larger than candidate
	// on every half-extent, i.e. whether it sits on top of it.
	LayerCompare(candidate Extents, window [2]float32) bool
	HandleClick() InteractionResult
	// SetHighlight applies hover feedback and reports whether the color
	// changed, so the caller knows a buffer refresh is needed.
	SetHighlight(alpha float32) bool
	// AppendText adds a typed fragment; only text boxes accept it.
	AppendText(fragment string) bool

	node() *base
}

// TextElement is implemented by the text-bearing variants.
type TextElement interface {
	Element
	// RenderText is the string handed to the text brush at time now.
	RenderText(now time.Time) string
	TextSize() float32
	TextColor() colors.Color
	// WrapBounds is the optional wrap box; ok is false when unbounded.
	WrapBounds() (bounds [2]float32, ok bool)
	// TextPosition is the top-left origin for the rendered text, offset by
	// half its measured extent so the element's position is the visual center.
	TextPosition(window [2]float32, m TextMeasurer, now time.Time) [2]float32
}

// TextMeasurer measures rendered text. maxWidth <= 0 means no wrapping.
type TextMeasurer interface {
	Measure(text string, size, maxWidth float32) (w, h float32)
}

// TextSection is one block of text queued to the brush.
type TextSection struct {
	Text     string
	Position [2]float32 // top-left, window pixels
	Color    colors.Color
	Bounds   [2]float32 // wrap box; zero means unbounded
	Size     float32
}

// TextBrush is the external text-shaping collaborator.
type TextBrush interface {
	TextMeasurer
	Queue(dev core.Device, sections []TextSection) error
	Draw(pass core.RenderPass)
}

type base struct {
	id         ID
	position   [2]float32 // fraction of the window
	scale      [2]float32 // fraction of the window, or pixels when pixelScale
	pixelScale bool
	color      colors.Color
	baseAlpha  float32
	texture    string
	geometry   geometry.Type
}

func newBase(position, scale [2]float32, color colors.Color, geo geometry.Type) base {
	return base{
		id:        NoID,
		position:  position,
		scale:     scale,
		color:     color,
		baseAlpha: color[3],
		texture:   "",
		geometry:  geo,
	}
}

func (b *base) node() *base                 { return b }
func (b *base) ID() ID                      { return b.id }
func (b *base) GeometryType() geometry.Type { return b.geometry }
func (b *base) Color() colors.Color         { return b.color }
func (b *base) TextureName() string         { return b.texture }

func (b *base) Position(window [2]float32) [2]float32 {
	return [2]float32{b.position[0] * window[0], b.position[1] * window[1]}
}

func (b *base) Scale(window [2]float32) [2]float32 {
	if b.pixelScale {
		return b.scale
	}
	return [2]float32{b.scale[0] * window[0], b.scale[1] * window[1]}
}

// IsWithinBounds is an axis-aligned box test, inclusive on every edge.
func (b *base) IsWithinBounds(cursor, pos, scale [2]float32) bool {
	return withinBox(cursor, pos, scale)
}

func (b *base) LayerCompare(candidate Extents, window [2]float32) bool {
	mine := extentsOf(b.Scale(window))
	for i := range mine {
		if mine[i] > candidate[i] {
			return false
		}
	}
	return true
}

func (b *base) HandleClick() InteractionResult { return InteractionResult{} }
func (b *base) SetHighlight(float32) bool      { return false }
func (b *base) AppendText(string) bool         { return false }

// highlight raises the displayed alpha to at least alpha; passing 0
// restores the declared color.
func (b *base) highlight(alpha float32) bool {
	a := b.baseAlpha
	if alpha > a {
		a = alpha
	}
	if b.color[3] == a {
		return false
	}
	b.color[3] = a
	return true
}

func withinBox(cursor, pos, scale [2]float32) bool {
	halfW, halfH := scale[0]/2, scale[1]/2
	return cursor[0] >= pos[0]-halfW && cursor[0] <= pos[0]+halfW &&
		cursor[1] >= pos[1]-halfH && cursor[1] <= pos[1]+halfH
}

func extentsOf(scale [2]float32) Extents {
	halfW, halfH := scale[0]/2, scale[1]/2
	return Extents{halfW, halfW, halfH, halfH}
}

// ExtentsOf returns el's half-extents at the given window size.
func ExtentsOf(el Element, window [2]float32) Extents {
	return extentsOf(el.Scale(window))
}

// ------ Helper ------

// Common carries the shared element state plus the fluent setters that
// return the concrete variant.
type Common[T any] struct {
	owner T
	base
}

func newCommon[T any](owner T, b base) Common[T] {
	return Common[T]{owner: owner, base: b}
}

// Texture selects the atlas entry drawn on the element's quad.
func (c *Common[T]) Texture(name string) T { c.base.texture = name; return c.owner }
