// Package glbackend implements core.Device on OpenGL 3.3 core. Every call
// must come from the thread that owns the GL context.
package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

type Device struct {
	win    core.Window
	vao    uint32
	width  int
	height int
}

// NewDevice loads the GL entry points for the window's current context.
func NewDevice(win core.Window, _ core.Config) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	d := &Device{win: win}

	// Core profile requires a bound VAO for every draw; one is enough since
	// attribute state is re-specified on each SetVertexBuffer.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	d.Resize(win.InnerSize())

	core.Logger().Info("gl device ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return d, nil
}

func (d *Device) Shutdown() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// Resize re-reads the framebuffer size. w and h are the logical window
// size, which differs from the framebuffer on high-DPI displays; the
// viewport always covers the whole framebuffer.
func (d *Device) Resize(w, h int) {
	d.width, d.height = d.win.FramebufferSize()
	gl.Viewport(0, 0, int32(d.width), int32(d.height))
	core.Logger().Debug("gl viewport", "logical", [2]int{w, h}, "framebuffer", [2]int{d.width, d.height})
}

// BeginPass clears the framebuffer. A zero-sized framebuffer, as seen while
// the window is minimized, reports ErrSurfaceOutdated.
func (d *Device) BeginPass(clear colors.Color) (core.RenderPass, error) {
	if d.width <= 0 || d.height <= 0 {
		return nil, core.ErrSurfaceOutdated
	}
	if fw, fh := d.win.FramebufferSize(); fw != d.width || fh != d.height {
		return nil, fmt.Errorf("%w: framebuffer %dx%d, viewport %dx%d", core.ErrSurfaceOutdated, fw, fh, d.width, d.height)
	}
	gl.BindVertexArray(d.vao)
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return &pass{dev: d}, nil
}

// ---- buffers ----

type buffer struct {
	id     uint32
	target uint32
	size   int
}

func (b *buffer) Size() int { return b.size }

func (b *buffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

func (d *Device) CreateBuffer(desc core.BufferDesc) (core.Buffer, error) {
	if desc.Size <= 0 {
		return nil, fmt.Errorf("create %s: invalid size %d", desc.Label, desc.Size)
	}
	b := &buffer{target: gl.ARRAY_BUFFER, size: desc.Size}
	if desc.Usage == core.BufferIndex {
		b.target = gl.ELEMENT_ARRAY_BUFFER
	}
	gl.BindVertexArray(d.vao)
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(b.target, b.id)
	gl.BufferData(b.target, desc.Size, nil, gl.DYNAMIC_DRAW)
	if code := gl.GetError(); code != gl.NO_ERROR {
		b.Release()
		return nil, fmt.Errorf("create %s: gl error 0x%x", desc.Label, code)
	}
	return b, nil
}

func (d *Device) WriteBuffer(buf core.Buffer, offset int, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok || b.id == 0 {
		return fmt.Errorf("write buffer: not a live gl buffer")
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("write buffer: %d bytes at %d overflow %d", len(data), offset, b.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(b.target, b.id)
	gl.BufferSubData(b.target, offset, len(data), gl.Ptr(data))
	return nil
}

// ---- textures ----

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("create texture: unsupported format %d", desc.Format)
	}
	if want := desc.Width * desc.Height * 4; desc.Pixels != nil && len(desc.Pixels) != want {
		return nil, fmt.Errorf("create texture: %d bytes of pixels, want %d", len(desc.Pixels), want)
	}

	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var pixels unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	if code := gl.GetError(); code != gl.NO_ERROR {
		t.Release()
		return nil, fmt.Errorf("create texture: gl error 0x%x", code)
	}
	return t, nil
}

func filter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}
