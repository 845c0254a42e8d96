package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/canopy/engine/core"
)

// pass binds state directly on the context; nothing is deferred to End.
type pass struct {
	dev      *Device
	pipeline *pipeline
	enabled  []uint32
}

func (p *pass) SetPipeline(pl core.Pipeline) {
	gp, ok := pl.(*pipeline)
	if !ok {
		core.Logger().Warn("set pipeline: not a gl pipeline")
		return
	}
	p.pipeline = gp
	gl.UseProgram(gp.program)
	if gp.blend {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// SetUniform accepts float32, int32, [2]float32, [4]float32 and [16]float32
// (a column-major mat4).
func (p *pass) SetUniform(name string, value any) {
	if p.pipeline == nil {
		return
	}
	loc := p.pipeline.location(name)
	if loc < 0 {
		return
	}
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case int32:
		gl.Uniform1i(loc, v)
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case [4]float32:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		core.Logger().Warn("set uniform: unsupported type", "name", name)
	}
}

func (p *pass) SetTexture(t core.Texture) {
	gt, ok := t.(*texture)
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, gt.id)
	p.SetUniform("uTexture", int32(0))
}

// SetVertexBuffer binds b and points the attributes of the pipeline's
// layout for slot at it. Instance-step layouts advance once per instance.
func (p *pass) SetVertexBuffer(slot int, b core.Buffer) {
	gb, ok := b.(*buffer)
	if !ok || p.pipeline == nil || slot >= len(p.pipeline.layouts) {
		return
	}
	layout := p.pipeline.layouts[slot]
	gl.BindBuffer(gl.ARRAY_BUFFER, gb.id)

	var divisor uint32
	if layout.Step == core.StepInstance {
		divisor = 1
	}
	for _, a := range layout.Attributes {
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		switch a.Type {
		case core.AttribUint32:
			gl.VertexAttribIPointer(loc, int32(a.Size), gl.UNSIGNED_INT, int32(layout.Stride), gl.PtrOffset(a.Offset))
		default:
			gl.VertexAttribPointer(loc, int32(a.Size), gl.FLOAT, false, int32(layout.Stride), gl.PtrOffset(a.Offset))
		}
		gl.VertexAttribDivisor(loc, divisor)
		p.enabled = append(p.enabled, loc)
	}
}

func (p *pass) SetIndexBuffer(b core.Buffer) {
	if gb, ok := b.(*buffer); ok {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gb.id)
	}
}

// DrawIndexed draws uint16-indexed triangles.
func (p *pass) DrawIndexed(indexCount, instanceCount int) {
	if indexCount == 0 || instanceCount == 0 {
		return
	}
	gl.DrawElementsInstanced(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_SHORT, gl.PtrOffset(0), int32(instanceCount))
}

func (p *pass) End() {
	for _, loc := range p.enabled {
		gl.DisableVertexAttribArray(loc)
	}
	p.enabled = p.enabled[:0]
	gl.UseProgram(0)
}
