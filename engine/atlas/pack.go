package atlas

import (
	"image"
	"image/color"
	"image/draw"
)

// Source is a named image to be packed into the sheet.
type Source struct {
	Name  string
	Image image.Image
}

// solidSize is the edge of the white block backing the Solid entry; only its
// interior is referenced so linear filtering never samples a neighbour.
const solidSize = 4

// padding between packed images, in pixels.
const padding = 1

// Pack lays the sources out left to right in a single row and returns the
// sheet together with its lookup table. A white Solid block is prepended
// unless a source already provides one.
func Pack(sources []Source) (*image.RGBA, *Atlas) {
	all := make([]Source, 0, len(sources)+1)
	hasSolid := false
	for _, s := range sources {
		if s.Name == Solid {
			hasSolid = true
		}
	}
	if !hasSolid {
		solid := image.NewRGBA(image.Rect(0, 0, solidSize, solidSize))
		draw.Draw(solid, solid.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
		all = append(all, Source{Name: Solid, Image: solid})
	}
	all = append(all, sources...)

	width, height := 0, 0
	for i, s := range all {
		b := s.Image.Bounds()
		if i > 0 {
			width += padding
		}
		width += b.Dx()
		if b.Dy() > height {
			height = b.Dy()
		}
	}

	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	a := New(width, height)

	x := 0
	for _, s := range all {
		b := s.Image.Bounds()
		dst := image.Rect(x, 0, x+b.Dx(), b.Dy())
		draw.Draw(sheet, dst, s.Image, b.Min, draw.Src)
		if s.Name == Solid && !hasSolid {
			a.Add(Solid, x+1, 1, solidSize-2, solidSize-2)
		} else {
			a.Add(s.Name, x, 0, b.Dx(), b.Dy())
		}
		x += b.Dx() + padding
	}
	return sheet, a
}
