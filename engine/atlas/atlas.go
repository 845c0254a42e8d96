// Package atlas maps texture names to normalized UV rectangles inside one
// packed texture sheet.
package atlas

import (
	"errors"
	"fmt"
	"sort"
)

// Solid is the flat-fill entry. An empty texture name resolves to it.
const Solid = "solid"

// ErrMissingTexture reports a texture name with no atlas entry. Elements
// that declare such a name are a configuration error.
var ErrMissingTexture = errors.New("texture not in atlas")

// UVRect is a normalized sub-rect: (U0,V0) top-left, (U1,V1) bottom-right.
type UVRect struct {
	U0, V0 float32
	U1, V1 float32
}

// Full covers the whole texture.
var Full = UVRect{0, 0, 1, 1}

// Entry is one named region in pixels plus its derived UVs.
type Entry struct {
	Name       string
	X, Y, W, H int
	UV         UVRect
}

type Atlas struct {
	width, height int
	entries       map[string]Entry
}

func New(width, height int) *Atlas {
	return &Atlas{width: width, height: height, entries: make(map[string]Entry)}
}

func (a *Atlas) Size() (w, h int) { return a.width, a.height }

// Add registers a pixel region and computes its UVs against the sheet size.
// Re-adding a name replaces the previous entry.
func (a *Atlas) Add(name string, x, y, w, h int) Entry {
	e := Entry{Name: name, X: x, Y: y, W: w, H: h, UV: FromPixels(x, y, w, h, a.width, a.height)}
	a.entries[name] = e
	return e
}

// Lookup returns the UV rect for name. "" resolves to Solid.
func (a *Atlas) Lookup(name string) (UVRect, bool) {
	if name == "" {
		name = Solid
	}
	e, ok := a.entries[name]
	if !ok {
		return UVRect{}, false
	}
	return e.UV, true
}

// Resolve is Lookup that reports absence as ErrMissingTexture.
func (a *Atlas) Resolve(name string) (UVRect, error) {
	uv, ok := a.Lookup(name)
	if !ok {
		return UVRect{}, fmt.Errorf("%w: %q", ErrMissingTexture, name)
	}
	return uv, nil
}

// Names lists the registered entries in sorted order.
func (a *Atlas) Names() []string {
	out := make([]string, 0, len(a.entries))
	for n := range a.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FromPixels converts a pixel rect inside a sheet of atlasW x atlasH to UVs.
func FromPixels(x, y, w, h, atlasW, atlasH int) UVRect {
	if atlasW <= 0 || atlasH <= 0 {
		return UVRect{}
	}
	return UVRect{
		U0: float32(x) / float32(atlasW),
		V0: float32(y) / float32(atlasH),
		U1: float32(x+w) / float32(atlasW),
		V1: float32(y+h) / float32(atlasH),
	}
}
