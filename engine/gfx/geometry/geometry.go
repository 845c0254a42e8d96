// Package geometry defines the per-vertex and per-instance GPU data layouts
// used by the UI: one static mesh per Type, one Instance per element.
package geometry

import (
	"encoding/binary"
	"math"

	"github.com/hubastard/canopy/engine/core"
)

// Type classifies an element's base mesh for instanced batching.
type Type uint8

const (
	// Quad is the opaque unit square used by panels, buttons, icons and text boxes.
	Quad Type = iota
	// LabelQuad is the unit square behind a text label; its vertices are
	// fully transparent so it never covers the glyphs drawn above it.
	LabelQuad
)

// Types lists every geometry type in draw order.
var Types = []Type{Quad, LabelQuad}

func (t Type) String() string {
	switch t {
	case Quad:
		return "quad"
	case LabelQuad:
		return "label-quad"
	default:
		return "unknown"
	}
}

// Vertex: pos2 + color4 => 6 floats
type Vertex struct {
	Position [2]float32
	Color    [4]float32
}

const VertexSize = 6 * 4

// IndexSize is the byte size of one uint16 index.
const IndexSize = 2

var VertexLayout = core.VertexLayout{
	Stride: VertexSize,
	Step:   core.StepVertex,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
	},
}

// Mesh returns the vertices and triangle indices of t. Corners span
// [-0.5, 0.5] so an instance's scale is its full pixel size. Positive Y goes
// down.
func Mesh(t Type) ([]Vertex, []uint16) {
	tint := [4]float32{1, 1, 1, 1}
	if t == LabelQuad {
		tint[3] = 0
	}
	vertices := []Vertex{
		{Position: [2]float32{-0.5, -0.5}, Color: tint}, // top-left
		{Position: [2]float32{0.5, -0.5}, Color: tint},  // top-right
		{Position: [2]float32{0.5, 0.5}, Color: tint},   // bottom-right
		{Position: [2]float32{-0.5, 0.5}, Color: tint},  // bottom-left
	}
	indices := []uint16{0, 1, 2, 2, 3, 0}
	return vertices, indices
}

// AppendVertexBytes encodes vs little-endian in VertexLayout order.
func AppendVertexBytes(dst []byte, vs []Vertex) []byte {
	for _, v := range vs {
		dst = appendFloats(dst, v.Position[:]...)
		dst = appendFloats(dst, v.Color[:]...)
	}
	return dst
}

func AppendIndexBytes(dst []byte, idx []uint16) []byte {
	for _, i := range idx {
		dst = binary.LittleEndian.AppendUint16(dst, i)
	}
	return dst
}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
