package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{0, 0, 0, 0}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

func (c Color) Alpha() float32 { return c[3] }

// ErrInvalidHex reports a malformed hex color string.
var ErrInvalidHex = errors.New("invalid hex color")

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (leading '#'
// optional) into a color with components in [0, 1].
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		// expand shorthand: "f0a" -> "ff00aa"
		var b strings.Builder
		for i := 0; i < len(h); i++ {
			b.WriteByte(h[i])
			b.WriteByte(h[i])
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	if len(h) == 6 {
		h += "ff"
	}

	var c Color
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

// MustHex is ParseHex for literals known at build time. It panics on error.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
