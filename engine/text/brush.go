package text

import (
	"fmt"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/geometry"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
)

const minGlyphCapacity = 64

// Brush queues text sections as glyph instances on the shared quad mesh and
// draws them in one instanced call. GPU resources are created on first Queue.
type Brush struct {
	font *Font

	texture  core.Texture
	sheet    int // font version the texture was uploaded from
	vertex   core.Buffer
	index    core.Buffer
	instance core.Buffer
	capacity int // glyph instances the instance buffer holds
	count    int
}

var _ ui.TextBrush = (*Brush)(nil)

func NewBrush(f *Font) *Brush { return &Brush{font: f} }

func (b *Brush) Font() *Font { return b.font }

// Count is the number of glyphs queued for the next Draw.
func (b *Brush) Count() int { return b.count }

func (b *Brush) Measure(s string, size, maxWidth float32) (w, h float32) {
	b.font.Ensure(s)
	return b.font.Measure(s, size, maxWidth)
}

// Queue replaces the pending glyphs with sections. Section positions are the
// top-left of the text block in window pixels.
func (b *Brush) Queue(dev core.Device, sections []ui.TextSection) error {
	defer profiler.Start("text.Queue")()

	for _, s := range sections {
		b.font.Ensure(s.Text)
	}
	var glyphs []geometry.Instance
	for _, s := range sections {
		for _, p := range b.font.layout(s.Text, s.Size, s.Bounds[0]) {
			glyphs = append(glyphs, geometry.Instance{
				Type:     geometry.Quad,
				Position: [2]float32{s.Position[0] + p.center[0], s.Position[1] + p.center[1]},
				Scale:    p.size,
				Color:    s.Color,
				UV:       p.uv,
			})
		}
	}
	b.count = 0
	if dev == nil || len(glyphs) == 0 {
		return nil
	}
	if err := b.ensure(dev, len(glyphs)); err != nil {
		return err
	}
	if err := dev.WriteBuffer(b.instance, 0, geometry.AppendInstanceBytes(nil, glyphs)); err != nil {
		return fmt.Errorf("write glyph instances: %w", err)
	}
	b.count = len(glyphs)
	return nil
}

// ensure creates the sheet texture and mesh on first use, uploads the sheet
// again after the font added glyphs and grows the instance buffer to hold
// n glyphs.
func (b *Brush) ensure(dev core.Device, n int) error {
	if b.texture != nil && b.sheet != b.font.Version() {
		b.texture.Release()
		b.texture = nil
	}
	if b.texture == nil {
		img := b.font.Image
		tex, err := dev.CreateTexture(core.TextureDesc{
			Width:     img.Bounds().Dx(),
			Height:    img.Bounds().Dy(),
			Format:    core.TextureRGBA8,
			Pixels:    img.Pix,
			MinFilter: "linear",
			MagFilter: "linear",
			WrapU:     "clamp",
			WrapV:     "clamp",
		})
		if err != nil {
			return fmt.Errorf("create glyph sheet: %w", err)
		}
		b.texture, b.sheet = tex, b.font.Version()
	}

	if b.vertex == nil {
		vertices, indices := geometry.Mesh(geometry.Quad)
		vb := geometry.AppendVertexBytes(nil, vertices)
		ib := geometry.AppendIndexBytes(nil, indices)
		vertex, err := dev.CreateBuffer(core.BufferDesc{Label: "glyph vertices", Usage: core.BufferVertex, Size: len(vb)})
		if err != nil {
			return fmt.Errorf("create glyph vertices: %w", err)
		}
		index, err := dev.CreateBuffer(core.BufferDesc{Label: "glyph indices", Usage: core.BufferIndex, Size: len(ib)})
		if err != nil {
			vertex.Release()
			return fmt.Errorf("create glyph indices: %w", err)
		}
		if err := dev.WriteBuffer(vertex, 0, vb); err != nil {
			vertex.Release()
			index.Release()
			return fmt.Errorf("write glyph vertices: %w", err)
		}
		if err := dev.WriteBuffer(index, 0, ib); err != nil {
			vertex.Release()
			index.Release()
			return fmt.Errorf("write glyph indices: %w", err)
		}
		b.vertex, b.index = vertex, index
	}

	if n <= b.capacity {
		return nil
	}
	capacity := max(b.capacity, minGlyphCapacity)
	for capacity < n {
		capacity *= 2
	}
	buf, err := dev.CreateBuffer(core.BufferDesc{
		Label: "glyph instances",
		Usage: core.BufferInstance,
		Size:  capacity * geometry.InstanceSize,
	})
	if err != nil {
		return fmt.Errorf("create glyph instances: %w", err)
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.instance, b.capacity = buf, capacity
	core.Logger().Debug("glyph buffer grown", "capacity", capacity)
	return nil
}

// Draw binds the glyph sheet and draws the queued glyphs. The caller rebinds
// its own texture before the next non-text draw.
func (b *Brush) Draw(pass core.RenderPass) {
	if b.count == 0 || b.texture == nil {
		return
	}
	_, indices := geometry.Mesh(geometry.Quad)
	pass.SetTexture(b.texture)
	pass.SetVertexBuffer(0, b.vertex)
	pass.SetVertexBuffer(1, b.instance)
	pass.SetIndexBuffer(b.index)
	pass.DrawIndexed(len(indices), b.count)
}

// Release frees the GPU resources. The font is left open.
func (b *Brush) Release() {
	for _, r := range []interface{ Release() }{b.texture, b.vertex, b.index, b.instance} {
		if r != nil {
			r.Release()
		}
	}
	b.texture, b.vertex, b.index, b.instance = nil, nil, nil, nil
	b.capacity, b.count = 0, 0
}
