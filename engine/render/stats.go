package render

import "github.com/hubastard/canopy/engine/core"

// Statistics captures the counts generated during one frame.
type Statistics struct {
	DrawCalls     int
	InstanceCount int
	IndexCount    int // indices per instance times instances, summed over draws
	TextureBinds  int
}

// countingPass forwards to the device pass and tallies what it records.
type countingPass struct {
	core.RenderPass
	stats Statistics
}

func (p *countingPass) SetTexture(t core.Texture) {
	p.stats.TextureBinds++
	p.RenderPass.SetTexture(t)
}

func (p *countingPass) DrawIndexed(indexCount, instanceCount int) {
	p.stats.DrawCalls++
	p.stats.InstanceCount += instanceCount
	p.stats.IndexCount += indexCount * instanceCount
	p.RenderPass.DrawIndexed(indexCount, instanceCount)
}
