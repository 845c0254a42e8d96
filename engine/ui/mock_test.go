package ui

import (
	"fmt"

	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

var window = [2]float32{800, 800}

func testAtlas() *atlas.Atlas {
	a := atlas.New(64, 16)
	a.Add(atlas.Solid, 1, 1, 2, 2)
	a.Add(IconClose, 5, 0, 10, 10)
	a.Add(IconMaximize, 16, 0, 12, 12)
	a.Add(IconMinimize, 29, 0, 12, 12)
	return a
}

type mockBuffer struct {
	desc     core.BufferDesc
	data     []byte
	released bool
}

func (b *mockBuffer) Size() int { return b.desc.Size }
func (b *mockBuffer) Release()  { b.released = true }

type mockDevice struct {
	buffers []*mockBuffer
	writes  int
	failOn  core.BufferUsage
	fail    bool
}

func (d *mockDevice) CreateBuffer(desc core.BufferDesc) (core.Buffer, error) {
	if d.fail && desc.Usage == d.failOn {
		return nil, fmt.Errorf("out of memory")
	}
	b := &mockBuffer{desc: desc}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *mockDevice) WriteBuffer(b core.Buffer, offset int, data []byte) error {
	mb := b.(*mockBuffer)
	if offset+len(data) > mb.desc.Size {
		return fmt.Errorf("write of %d bytes at %d overflows %d", len(data), offset, mb.desc.Size)
	}
	mb.data = append(mb.data[:0], data...)
	d.writes++
	return nil
}

func (d *mockDevice) CreateTexture(core.TextureDesc) (core.Texture, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *mockDevice) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) {
	return nil, fmt.Errorf("not supported")
}

func (d *mockDevice) Resize(w, h int) {}

func (d *mockDevice) BeginPass(colors.Color) (core.RenderPass, error) {
	return &recordingPass{}, nil
}

// live returns the buffers not yet released, by usage.
func (d *mockDevice) live(usage core.BufferUsage) []*mockBuffer {
	var out []*mockBuffer
	for _, b := range d.buffers {
		if !b.released && b.desc.Usage == usage {
			out = append(out, b)
		}
	}
	return out
}

type drawCall struct {
	indices, instances int
}

type recordingPass struct {
	draws []drawCall
	log   []string
}

func (p *recordingPass) SetPipeline(core.Pipeline)  {}
func (p *recordingPass) SetUniform(string, any)     {}
func (p *recordingPass) SetTexture(core.Texture)    {}
func (p *recordingPass) SetIndexBuffer(core.Buffer) {}
func (p *recordingPass) End()                       {}

func (p *recordingPass) SetVertexBuffer(slot int, b core.Buffer) {
	p.log = append(p.log, fmt.Sprintf("slot%d:%s", slot, b.(*mockBuffer).desc.Label))
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount int) {
	p.draws = append(p.draws, drawCall{indexCount, instanceCount})
}

// fakeBrush measures 10px per byte and one line of height size.
type fakeBrush struct {
	queued [][]TextSection
	drawn  int
}

func (f *fakeBrush) Measure(text string, size, maxWidth float32) (float32, float32) {
	return float32(len(text)) * 10, size
}

func (f *fakeBrush) Queue(dev core.Device, sections []TextSection) error {
	f.queued = append(f.queued, append([]TextSection(nil), sections...))
	return nil
}

func (f *fakeBrush) Draw(core.RenderPass) { f.drawn++ }

func (f *fakeBrush) last() []TextSection {
	if len(f.queued) == 0 {
		return nil
	}
	return f.queued[len(f.queued)-1]
}
