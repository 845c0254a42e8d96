package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hubastard/canopy/engine/atlas"
)

// LoadPNG decodes dir/textures/relPath into a tightly packed RGBA image with
// a top-left origin.
func LoadPNG(dir, relPath string) (*image.RGBA, error) {
	path := filepath.Join(dir, "textures", relPath)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return imageToRGBA(img), nil
}

// LoadTextures loads every PNG under dir/textures as an atlas source named
// after the file without its extension. A missing textures directory yields
// no sources.
func LoadTextures(dir string) ([]atlas.Source, error) {
	root := filepath.Join(dir, "textures")
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read textures: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	sources := make([]atlas.Source, 0, len(names))
	for _, n := range names {
		img, err := LoadPNG(dir, n)
		if err != nil {
			return nil, err
		}
		sources = append(sources, atlas.Source{
			Name:  strings.TrimSuffix(n, filepath.Ext(n)),
			Image: img,
		})
	}
	return sources, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
