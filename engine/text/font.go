// Package text rasterizes a font into a glyph sheet and draws text sections
// as instanced glyph quads.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"slices"
	"strings"

	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is one rasterized rune. Metrics are in pixels at the font's SizePx.
type Glyph struct {
	Advance  float32
	BearingX float32 // pen to left edge
	BearingY float32 // baseline to top edge
	W, H     int
	UV       atlas.UVRect
}

// Font is a glyph sheet plus the metrics needed to lay text out on it.
// The sheet holds white glyphs with alpha coverage so any tint works. It
// starts with Latin-1; Ensure adds other runes the face covers.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Image                    *image.RGBA

	face    font.Face
	runes   []rune
	absent  map[rune]struct{} // not in the face, or did not fit
	version int
}

const (
	glyphPadding  = 2
	startSheet    = 512
	maxSheetWidth = 4096
)

// runeSet is printable ASCII plus Latin-1.
func runeSet() []rune {
	var rs []rune
	for r := rune(32); r <= 126; r++ {
		rs = append(rs, r)
	}
	for r := rune(160); r <= 255; r++ {
		rs = append(rs, r)
	}
	return rs
}

// DefaultFont rasterizes the bundled Go Regular face.
func DefaultFont(sizePx float32) (*Font, error) {
	return NewFont(goregular.TTF, sizePx)
}

// LoadFont reads and rasterizes a TrueType or OpenType file.
func LoadFont(path string, sizePx float32) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFont(data, sizePx)
}

// NewFont rasterizes ttf at sizePx into a shelf-packed sheet.
func NewFont(ttf []byte, sizePx float32) (*Font, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size %v: must be positive", sizePx)
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	f := &Font{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: float32(m.Height.Round()) - ascent + descent,
		face:    face,
		absent:  make(map[rune]struct{}),
	}
	if err := f.rasterize(runeSet()); err != nil {
		_ = face.Close()
		return nil, err
	}
	return f, nil
}

// Version changes every time the sheet is redrawn.
func (f *Font) Version() int { return f.version }

// Ensure adds the runes of s that the sheet lacks and the face covers. It
// reports whether the sheet was redrawn, which moves every glyph's UV.
func (f *Font) Ensure(s string) bool {
	if f.face == nil {
		return false
	}
	var add []rune
	for _, r := range s {
		if r < ' ' {
			continue
		}
		if _, ok := f.Glyphs[r]; ok {
			continue
		}
		if _, ok := f.absent[r]; ok || slices.Contains(add, r) {
			continue
		}
		if _, _, ok := f.face.GlyphBounds(r); !ok {
			f.absent[r] = struct{}{}
			continue
		}
		add = append(add, r)
	}
	if len(add) == 0 {
		return false
	}
	if err := f.rasterize(append(slices.Clone(f.runes), add...)); err != nil {
		core.Logger().Warn("glyphs not added", "runes", string(add), "err", err)
		for _, r := range add {
			f.absent[r] = struct{}{}
		}
		return false
	}
	core.Logger().Debug("glyph sheet redrawn", "added", string(add), "glyphs", len(f.Glyphs))
	return true
}

// rasterize packs and draws rs into a new sheet. The current sheet is kept
// when rs does not fit.
func (f *Font) rasterize(rs []rune) error {
	type measured struct {
		r      rune
		w, h   int
		adv    float32
		bx, by int
	}
	glyphs := make([]measured, 0, len(rs))
	for _, r := range rs {
		b, adv, ok := f.face.GlyphBounds(r)
		if !ok {
			continue
		}
		minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
		glyphs = append(glyphs, measured{
			r:   r,
			w:   b.Max.X.Ceil() - minX,
			h:   b.Max.Y.Ceil() - minY,
			adv: float32(adv.Round()),
			bx:  minX,
			by:  -minY,
		})
	}

	size := startSheet
	var pos map[rune]image.Point
	for {
		pos = make(map[rune]image.Point, len(glyphs))
		x, y, rowH := glyphPadding, glyphPadding, 0
		fits := true
		for _, g := range glyphs {
			if g.w <= 0 || g.h <= 0 {
				continue
			}
			if x+g.w+glyphPadding > size {
				x = glyphPadding
				y += rowH + glyphPadding
				rowH = 0
			}
			if x+g.w+glyphPadding > size || y+g.h+glyphPadding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + glyphPadding
			rowH = max(rowH, g.h)
		}
		if fits {
			break
		}
		size *= 2
		if size > maxSheetWidth {
			return fmt.Errorf("glyph sheet exceeds %dpx at size %v", maxSheetWidth, f.SizePx)
		}
	}

	sheet := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: sheet, Src: image.White, Face: f.face}

	out := make(map[rune]Glyph, len(glyphs))
	for _, g := range glyphs {
		glyph := Glyph{
			Advance:  g.adv,
			BearingX: float32(g.bx),
			BearingY: float32(g.by),
			W:        g.w,
			H:        g.h,
		}
		if p, ok := pos[g.r]; ok {
			drawer.Dot = fixed.P(p.X-g.bx, p.Y+g.by)
			drawer.DrawString(string(g.r))
			glyph.UV = atlas.FromPixels(p.X, p.Y, g.w, g.h, size, size)
		}
		out[g.r] = glyph
	}

	f.runes = rs
	f.Glyphs = out
	f.Image = sheet
	f.version++
	return nil
}

// Close releases the underlying face. The sheet and glyph table stay usable.
func (f *Font) Close() {
	if f != nil && f.face != nil {
		_ = f.face.Close()
		f.face = nil
	}
}

// LineHeight is the baseline-to-baseline distance at SizePx.
func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

func (f *Font) kern(a, b rune) float32 {
	if f.face == nil || a < 0 {
		return 0
	}
	return float32(f.face.Kern(a, b)) / 64
}

// advance is the pen movement for r, falling back to a space for runes the
// face does not cover.
func (f *Font) advance(r rune) float32 {
	if g, ok := f.Glyphs[r]; ok {
		return g.Advance
	}
	return f.Glyphs[' '].Advance
}

// width of a single line at SizePx, kerning included.
func (f *Font) width(line string) float32 {
	var w float32
	prev := rune(-1)
	for _, r := range line {
		w += f.kern(prev, r) + f.advance(r)
		prev = r
	}
	return w
}

// lines splits s at newlines and, when maxWidth > 0, greedily wraps each
// paragraph at spaces so no line exceeds maxWidth (a single overlong word
// stays on its own line). maxWidth is in SizePx units.
func (f *Font) lines(s string, maxWidth float32) []string {
	paragraphs := strings.Split(s, "\n")
	if maxWidth <= 0 {
		return paragraphs
	}
	space := f.advance(' ')
	var out []string
	for _, p := range paragraphs {
		words := strings.Split(p, " ")
		line := words[0]
		lineW := f.width(line)
		for _, word := range words[1:] {
			wordW := f.width(word)
			if line != "" && lineW+space+wordW > maxWidth {
				out = append(out, line)
				line, lineW = word, wordW
				continue
			}
			line += " " + word
			lineW += space + wordW
		}
		out = append(out, line)
	}
	return out
}

// Measure returns the pixel extent of s drawn at size, wrapped at maxWidth
// when it is positive.
func (f *Font) Measure(s string, size, maxWidth float32) (w, h float32) {
	if s == "" {
		return 0, 0
	}
	scale := size / f.SizePx
	ls := f.lines(s, maxWidth/scale)
	for _, l := range ls {
		w = max(w, f.width(l))
	}
	return w * scale, float32(len(ls)) * f.LineHeight() * scale
}

// placed is a glyph quad: center and size in pixels relative to the text origin.
type placed struct {
	center [2]float32
	size   [2]float32
	uv     atlas.UVRect
}

// layout positions every visible glyph of s with its top-left at the origin.
func (f *Font) layout(s string, size, maxWidth float32) []placed {
	scale := size / f.SizePx
	var out []placed
	for i, line := range f.lines(s, maxWidth/scale) {
		baseline := f.Ascent + float32(i)*f.LineHeight()
		var pen float32
		prev := rune(-1)
		for _, r := range line {
			pen += f.kern(prev, r)
			prev = r
			g, ok := f.Glyphs[r]
			if !ok {
				pen += f.advance(r)
				continue
			}
			if g.W > 0 && g.H > 0 {
				left := pen + g.BearingX
				top := baseline - g.BearingY
				out = append(out, placed{
					center: [2]float32{(left + float32(g.W)/2) * scale, (top + float32(g.H)/2) * scale},
					size:   [2]float32{float32(g.W) * scale, float32(g.H) * scale},
					uv:     g.UV,
				})
			}
			pen += g.Advance
		}
	}
	return out
}
