package core

import (
	"errors"

	"github.com/hubastard/canopy/engine/colors"
)

// Surface errors returned by Device.BeginPass. Lost and Outdated are
// recovered by resizing the device to the current window size.
var (
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
)

type BufferUsage int

const (
	BufferVertex BufferUsage = iota
	BufferIndex
	BufferInstance
)

func (u BufferUsage) String() string {
	switch u {
	case BufferVertex:
		return "vertex"
	case BufferIndex:
		return "index"
	case BufferInstance:
		return "instance"
	default:
		return "unknown"
	}
}

type BufferDesc struct {
	Label string
	Usage BufferUsage
	Size  int // bytes
}

// Buffer is an opaque GPU buffer handle.
type Buffer interface {
	Size() int
	Release()
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte
	MinFilter, MagFilter string // "nearest" or "linear"
	WrapU, WrapV         string // "clamp" or "repeat"
}

// Texture is an opaque GPU texture handle.
type Texture interface {
	Size() (w, h int)
	Release()
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
	AttribUint32
)

type StepMode int

const (
	StepVertex StepMode = iota
	StepInstance
)

type VertexAttrib struct {
	Location int
	Size     int // component count
	Type     AttribType
	Offset   int // bytes
}

// VertexLayout describes one vertex buffer slot.
type VertexLayout struct {
	Stride     int
	Step       StepMode
	Attributes []VertexAttrib
}

type PipelineDesc struct {
	Label          string
	VertexSource   string
	FragmentSource string
	// Layouts is indexed by vertex buffer slot.
	Layouts []VertexLayout
	Blend   bool
}

// Pipeline is an opaque compiled shader program plus its vertex layouts.
type Pipeline interface {
	Release()
}

// Device is the GPU collaborator: resource creation, byte-level writes and
// render passes. Adapter/device selection happens before it reaches the UI.
type Device interface {
	CreateBuffer(desc BufferDesc) (Buffer, error)
	WriteBuffer(b Buffer, offset int, data []byte) error
	CreateTexture(desc TextureDesc) (Texture, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	Resize(w, h int)
	BeginPass(clear colors.Color) (RenderPass, error)
}

// RenderPass records binds and draws for one frame.
type RenderPass interface {
	SetPipeline(p Pipeline)
	SetUniform(name string, value any)
	SetTexture(t Texture)
	SetVertexBuffer(slot int, b Buffer)
	SetIndexBuffer(b Buffer)
	DrawIndexed(indexCount, instanceCount int)
	End()
}
