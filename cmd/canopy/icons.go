package main

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/ui"
)

const iconSize = 12

// windowIcons draws the title-bar glyphs as white-on-transparent images so
// the shell runs without any asset files.
func windowIcons() []atlas.Source {
	return []atlas.Source{
		{Name: ui.IconClose, Image: closeIcon()},
		{Name: ui.IconMaximize, Image: maximizeIcon()},
		{Name: ui.IconMinimize, Image: minimizeIcon()},
	}
}

func blankIcon() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)
	return img
}

func closeIcon() *image.RGBA {
	img := blankIcon()
	for i := 1; i < iconSize-1; i++ {
		img.Set(i, i, color.White)
		img.Set(iconSize-1-i, i, color.White)
	}
	return img
}

func maximizeIcon() *image.RGBA {
	img := blankIcon()
	for i := 1; i < iconSize-1; i++ {
		img.Set(i, 1, color.White)
		img.Set(i, iconSize-2, color.White)
		img.Set(1, i, color.White)
		img.Set(iconSize-2, i, color.White)
	}
	return img
}

func minimizeIcon() *image.RGBA {
	img := blankIcon()
	for i := 1; i < iconSize-1; i++ {
		img.Set(i, iconSize/2, color.White)
	}
	return img
}

// mergeSources appends loaded over built-in sources; a loaded image replaces
// a built-in one of the same name.
func mergeSources(builtin, loaded []atlas.Source) []atlas.Source {
	byName := make(map[string]bool, len(loaded))
	for _, s := range loaded {
		byName[s.Name] = true
	}
	out := make([]atlas.Source, 0, len(builtin)+len(loaded))
	for _, s := range builtin {
		if !byName[s.Name] {
			out = append(out, s)
		}
	}
	return append(out, loaded...)
}
