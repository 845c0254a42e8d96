package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTextures(t *testing.T) {
	dir := t.TempDir()
	tex := filepath.Join(dir, "textures")
	if err := os.MkdirAll(tex, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(tex, "minimize.png"), 12, 12)
	writePNG(t, filepath.Join(tex, "close.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(tex, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadTextures(dir)
	if err != nil {
		t.Fatalf("LoadTextures() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("LoadTextures() returned %d sources, want 2", len(sources))
	}
	if sources[0].Name != "close" || sources[1].Name != "minimize" {
		t.Errorf("names = %q, %q, want close, minimize", sources[0].Name, sources[1].Name)
	}
	rgba := sources[0].Image.(*image.RGBA)
	if rgba.Bounds().Dx() != 10 || rgba.Stride != 40 {
		t.Errorf("close bounds = %v stride %d, want 10px wide with stride 40", rgba.Bounds(), rgba.Stride)
	}
	if got := rgba.RGBAAt(3, 3); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v, want opaque red", got)
	}
}

func TestLoadTexturesMissingDir(t *testing.T) {
	sources, err := LoadTextures(t.TempDir())
	if err != nil || sources != nil {
		t.Errorf("LoadTextures() = %v, %v, want nil, nil", sources, err)
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shaders"), 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "shaders", "ui.vert"), []byte("void main() {}"), 0o644)
	os.WriteFile(filepath.Join(dir, "shaders", "ui.frag"), []byte("void main() {}\x00"), 0o644)

	vs, fs, err := LoadProgram(dir, "ui")
	if err != nil {
		t.Fatalf("LoadProgram() error = %v", err)
	}
	for _, src := range []string{vs, fs} {
		if !strings.HasSuffix(src, "}\x00") {
			t.Errorf("source %q is not null-terminated once", src)
		}
	}

	if _, _, err := LoadProgram(dir, "missing"); err == nil {
		t.Error("LoadProgram(missing) error = nil")
	}
}

func TestRepoShadersLoad(t *testing.T) {
	vs, fs, err := LoadProgram(filepath.Join("..", "..", "assets"), "ui")
	if err != nil {
		t.Fatalf("LoadProgram() error = %v", err)
	}
	if !strings.Contains(vs, "uViewProj") || !strings.Contains(fs, "uTexture") {
		t.Error("ui shaders are missing the uniforms the renderer binds")
	}
}
