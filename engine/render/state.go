// Package render owns the GPU state the UI is drawn with: the pipeline, the
// texture sheet and the camera uniform.
package render

import (
	"fmt"
	"image"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/geometry"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/scene"
	"github.com/hubastard/canopy/engine/ui"
)

// Shaders holds the sources of the UI program.
type Shaders struct {
	Vertex   string
	Fragment string
}

// State renders the shared interface once per frame.
type State struct {
	dev      core.Device
	shared   *ui.Shared
	pipeline core.Pipeline
	sheet    core.Texture
	camera   *scene.OrthoCamera2D
	clear    colors.Color
	stats    Statistics
}

// New compiles the UI pipeline and uploads sheet, the packed atlas image.
func New(dev core.Device, shared *ui.Shared, sheet *image.RGBA, shaders Shaders, clear colors.Color, w, h int) (*State, error) {
	pipe, err := dev.CreatePipeline(core.PipelineDesc{
		Label:          "ui",
		VertexSource:   shaders.Vertex,
		FragmentSource: shaders.Fragment,
		Layouts:        geometry.Layouts,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ui pipeline: %w", err)
	}

	tex, err := dev.CreateTexture(core.TextureDesc{
		Width:     sheet.Bounds().Dx(),
		Height:    sheet.Bounds().Dy(),
		Format:    core.TextureRGBA8,
		Pixels:    sheet.Pix,
		MinFilter: "linear",
		MagFilter: "linear",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		pipe.Release()
		return nil, fmt.Errorf("upload atlas sheet: %w", err)
	}

	s := &State{
		dev:      dev,
		shared:   shared,
		pipeline: pipe,
		sheet:    tex,
		camera:   scene.NewOrtho2D(w, h),
		clear:    clear,
	}
	dev.Resize(w, h)
	return s, nil
}

func (s *State) Device() core.Device { return s.dev }

// Stats returns the counts of the last rendered frame.
func (s *State) Stats() Statistics { return s.stats }

// Camera exposes the view used for the uViewProj uniform.
func (s *State) Camera() *scene.OrthoCamera2D { return s.camera }

// Resize reconfigures the surface and camera. Zero sizes (a minimized
// window) are ignored.
func (s *State) Resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	s.camera.SetViewportPixels(w, h)
	s.dev.Resize(w, h)
}

// Render draws one frame. Surface errors from the device are returned
// wrapped so callers can match core.ErrSurfaceLost and ErrSurfaceOutdated.
func (s *State) Render() error {
	defer profiler.Start("render.Render")()

	p, err := s.dev.BeginPass(s.clear)
	if err != nil {
		return fmt.Errorf("begin pass: %w", err)
	}
	pass := &countingPass{RenderPass: p}
	pass.SetPipeline(s.pipeline)
	pass.SetUniform("uViewProj", s.camera.VP())
	pass.SetTexture(s.sheet)
	s.shared.With(func(iface *ui.Interface) { iface.Draw(pass) })
	pass.End()

	s.stats = pass.stats
	return nil
}

// Release frees the pipeline and sheet. The shared interface is not touched.
func (s *State) Release() {
	if s.sheet != nil {
		s.sheet.Release()
		s.sheet = nil
	}
	if s.pipeline != nil {
		s.pipeline.Release()
		s.pipeline = nil
	}
}
