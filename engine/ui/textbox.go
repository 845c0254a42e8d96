package ui

import (
	"time"
	"unicode/utf8"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/geometry"
	"golang.org/x/text/unicode/norm"
)

// BlinkInterval is how long the text cursor stays on or off.
const BlinkInterval = 500 * time.Millisecond

// CursorGlyph is appended to the rendered text while the cursor is visible.
const CursorGlyph = "|"

// UITextBox is an editable text field on a quad background. Clicking it
// selects it; typed input is appended while it stays selected.
type UITextBox struct {
	Common[*UITextBox]
	text        string
	placeholder string
	textColor   colors.Color
	fontSize    float32
	bounds      [2]float32
	wrap        bool

	lastToggle    time.Time
	cursorVisible bool
}

func TextBox(placeholder string, position, scale [2]float32, color, textColor colors.Color) *UITextBox {
	t := &UITextBox{placeholder: placeholder, textColor: textColor, fontSize: DefaultFontSize}
	t.Common = newCommon(t, newBase(position, scale, color, geometry.Quad))
	return t
}

func (t *UITextBox) FontSize(size float32) *UITextBox { t.fontSize = size; return t }

func (t *UITextBox) Wrap(w, h float32) *UITextBox {
	t.bounds = [2]float32{w, h}
	t.wrap = w > 0
	return t
}

func (t *UITextBox) Text() string        { return t.text }
func (t *UITextBox) Placeholder() string { return t.placeholder }

func (t *UITextBox) HandleClick() InteractionResult { return Propagate(SetSelected(t.id)) }

func (t *UITextBox) SetHighlight(alpha float32) bool { return t.highlight(alpha) }

// AppendText adds fragment and recomposes the result to NFC, so a combining
// mark from a dead key merges with the character before it.
func (t *UITextBox) AppendText(fragment string) bool {
	if fragment == "" {
		return false
	}
	t.text = norm.NFC.String(t.text + fragment)
	return true
}

// DeleteLastRune removes the final character, reporting whether there was one.
func (t *UITextBox) DeleteLastRune() bool {
	if t.text == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(t.text)
	t.text = t.text[:len(t.text)-size]
	return true
}

// RenderText returns the placeholder while empty, otherwise the text with a
// cursor that toggles every BlinkInterval. Stored text is left untouched.
func (t *UITextBox) RenderText(now time.Time) string {
	t.tick(now)
	if t.text == "" {
		return t.placeholder
	}
	if t.cursorVisible {
		return t.text + CursorGlyph
	}
	return t.text
}

func (t *UITextBox) tick(now time.Time) {
	if t.lastToggle.IsZero() {
		t.lastToggle = now
		return
	}
	if now.Sub(t.lastToggle) >= BlinkInterval {
		t.cursorVisible = !t.cursorVisible
		t.lastToggle = now
	}
}

func (t *UITextBox) TextSize() float32              { return t.fontSize }
func (t *UITextBox) TextColor() colors.Color        { return t.textColor }
func (t *UITextBox) WrapBounds() ([2]float32, bool) { return t.bounds, t.wrap }

// TextPosition centers on the stored text (or placeholder) without the
// cursor glyph so the text does not shift while blinking.
func (t *UITextBox) TextPosition(window [2]float32, m TextMeasurer, _ time.Time) [2]float32 {
	s := t.text
	if s == "" {
		s = t.placeholder
	}
	return centerText(t.Position(window), s, t.fontSize, t.bounds, t.wrap, m)
}
