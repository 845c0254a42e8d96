package geometry

import (
	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
)

// Instance is the per-element transform, color and texture coordinates.
// Position is the center in window pixels, Scale the full size in pixels.
type Instance struct {
	Type     Type
	Position [2]float32
	Scale    [2]float32
	Color    colors.Color
	UV       atlas.UVRect
}

// InstanceRaw is the GPU-resident record: translate2 + scale2 + color4 + uv4.
type InstanceRaw [12]float32

const InstanceSize = 12 * 4

var InstanceLayout = core.VertexLayout{
	Stride: InstanceSize,
	Step:   core.StepInstance,
	Attributes: []core.VertexAttrib{
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 0},     // translation
		{Location: 3, Size: 2, Type: core.AttribFloat32, Offset: 2 * 4}, // scale
		{Location: 4, Size: 4, Type: core.AttribFloat32, Offset: 4 * 4}, // color
		{Location: 5, Size: 4, Type: core.AttribFloat32, Offset: 8 * 4}, // uv rect
	},
}

// Layouts is the slot order every UI pipeline is built with.
var Layouts = []core.VertexLayout{VertexLayout, InstanceLayout}

func (i Instance) Raw() InstanceRaw {
	return InstanceRaw{
		i.Position[0], i.Position[1],
		i.Scale[0], i.Scale[1],
		i.Color[0], i.Color[1], i.Color[2], i.Color[3],
		i.UV.U0, i.UV.V0, i.UV.U1, i.UV.V1,
	}
}

// AppendInstanceBytes encodes the raw records of in, in order.
func AppendInstanceBytes(dst []byte, in []Instance) []byte {
	for _, i := range in {
		raw := i.Raw()
		dst = appendFloats(dst, raw[:]...)
	}
	return dst
}
