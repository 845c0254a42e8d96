// Package app routes window events into the UI: hover and click resolution,
// text entry, window actions requested by elements, and the manual
// drag-resize of an undecorated window.
package app

import (
	"errors"
	"fmt"

	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
)

// HoverAlpha is the alpha applied to the element under the cursor.
const HoverAlpha float32 = 1

// RenderTarget is the renderer as seen by the router.
type RenderTarget interface {
	// Device is nil until the GPU is ready.
	Device() core.Device
	Resize(w, h int)
	Render() error
}

// Logic is the event router. It is driven from the event loop thread; the
// interface it mutates is shared with the renderer through ui.Shared.
type Logic struct {
	Data AppData

	window core.Shim
	shared *ui.Shared
	render RenderTarget
	atlas  *atlas.Atlas
	brush  ui.TextBrush
	build  func(u *ui.UserInterface)
	opts   []ui.Option

	icon   core.CursorIcon
	closed bool
}

// NewLogic creates a router that builds its interface with build.
func NewLogic(window core.Shim, shared *ui.Shared, a *atlas.Atlas, brush ui.TextBrush, build func(u *ui.UserInterface), opts ...ui.Option) *Logic {
	return &Logic{
		Data:   NewAppData(),
		window: window,
		shared: shared,
		atlas:  a,
		brush:  brush,
		build:  build,
		opts:   opts,
	}
}

// SetRenderTarget attaches the renderer once the GPU is ready.
func (l *Logic) SetRenderTarget(rt RenderTarget) { l.render = rt }

// Closed reports whether a close was requested.
func (l *Logic) Closed() bool { return l.closed }

func (l *Logic) windowSize() [2]float32 {
	w, h := l.window.InnerSize()
	return [2]float32{float32(w), float32(h)}
}

func (l *Logic) device() core.Device {
	if l.render == nil {
		return nil
	}
	return l.render.Device()
}

// RebuildInterface builds a fresh interface at the current window size and
// swaps it in, carrying over typed text. Build errors (bad colors, duplicate
// ids, missing textures) are configuration errors and are returned.
func (l *Logic) RebuildInterface() error {
	defer profiler.Start("app.RebuildInterface")()

	iface := ui.New(l.atlas, l.brush, l.opts...)
	iface.Reserve(ui.TitleBarID)
	if err := iface.Show(l.build); err != nil {
		return fmt.Errorf("build interface: %w", err)
	}
	l.shared.With(func(prev *ui.Interface) { iface.CarryText(prev) })
	if l.Data.CurrentHover != ui.NoID {
		iface.SetHighlight(l.Data.CurrentHover, HoverAlpha)
	}
	if err := iface.RebuildBuffers(l.device(), l.windowSize()); err != nil {
		iface.Release()
		return fmt.Errorf("build interface: %w", err)
	}
	l.shared.Replace(iface)
	return nil
}

// HandleEvent dispatches ev to the handler for the current state.
func (l *Logic) HandleEvent(ev core.Event) error {
	switch l.Data.State {
	case StateResizing:
		return l.resizingEvent(ev)
	default:
		return l.defaultEvent(ev)
	}
}

// defaultEvent handles everything outside a drag-resize.
func (l *Logic) defaultEvent(ev core.Event) error {
	var (
		needsRebuild bool
		needsUpdate  bool
	)

	switch e := ev.(type) {
	case core.EventCloseRequested:
		l.requestClose()

	case core.EventResized:
		needsRebuild = true
		if l.render != nil {
			l.render.Resize(e.W, e.H)
		}

	case core.EventRedrawRequested:
		l.renderFrame()

	case core.EventCursorMoved:
		l.Data.Cursor = [2]float32{float32(e.X), float32(e.Y)}
		l.classifyEdge()
		needsUpdate = l.hover()

	case core.EventMouseInput:
		if e.Button != core.MouseLeft || !e.Pressed {
			break
		}
		l.Data.Selection = ui.NoID
		if edge := l.classifyEdge(); edge != EdgeNone {
			l.Data.State = StateResizing
			l.Data.HeldEdge = edge
			core.Logger().Debug("resize started", "edge", edge, "cursor", l.Data.Cursor)
		}
		l.click()

	case core.EventKeyboard:
		if e.Pressed {
			needsUpdate = l.typeKey(e)
		}
	}

	if l.editing() {
		// The cursor glyph blinks only while frames keep coming.
		needsUpdate = true
	}
	if needsUpdate && !needsRebuild {
		l.updateInstances()
		l.window.RequestRedraw()
	}
	if needsRebuild {
		if err := l.RebuildInterface(); err != nil {
			return err
		}
		l.window.RequestRedraw()
	}
	return nil
}

// resizingEvent handles events while an edge is held. Everything but the
// drag itself, the release and window bookkeeping is ignored.
func (l *Logic) resizingEvent(ev core.Event) error {
	switch e := ev.(type) {
	case core.EventCursorMoved:
		prev := l.Data.Cursor
		l.Data.Cursor = [2]float32{float32(e.X), float32(e.Y)}
		l.dragResize(prev)

	case core.EventMouseInput:
		if e.Button == core.MouseLeft && !e.Pressed {
			l.Data.State = StateDefault
			l.Data.HeldEdge = EdgeNone
			l.classifyEdge()
			core.Logger().Debug("resize finished")
		}

	case core.EventCloseRequested, core.EventResized, core.EventRedrawRequested:
		return l.defaultEvent(ev)
	}
	return nil
}

// classifyEdge classifies the cursor with the zone of the current state and
// updates the system cursor when the edge changes. While resizing the
// cursor keeps the shape of the held edge.
func (l *Logic) classifyEdge() Edge {
	zone := DefaultEdgeZone
	if l.Data.State == StateResizing {
		zone = ResizingEdgeZone
	}
	edge := ClassifyEdge(l.Data.Cursor, l.windowSize(), zone)
	shown := edge
	if l.Data.State == StateResizing && edge != EdgeNone {
		shown = l.Data.HeldEdge
	}
	if icon := shown.CursorIcon(); icon != l.icon {
		if err := l.window.SetCursorIcon(icon); err != nil {
			core.Logger().Warn("set cursor icon", "icon", icon, "err", err)
		}
		l.icon = icon
	}
	return edge
}

// dragResize applies the cursor movement since prev to the held edge. The
// cursor must stay within the widened zone of some edge; losing it aborts
// the drag.
func (l *Logic) dragResize(prev [2]float32) {
	if l.classifyEdge() == EdgeNone {
		l.Data.State = StateDefault
		l.Data.HeldEdge = EdgeNone
		core.Logger().Debug("resize aborted, cursor left the edge zone")
		return
	}

	w, h := l.window.InnerSize()
	x, y, err := l.window.OuterPosition()
	if err != nil {
		core.Logger().Warn("resize skipped, outer position unavailable", "err", err)
		return
	}
	delta := [2]float32{l.Data.Cursor[0] - prev[0], l.Data.Cursor[1] - prev[1]}
	newW, newH, newX := resizeFor(l.Data.HeldEdge, delta, w, h, x)

	if newX != x {
		if err := l.window.SetOuterPosition(newX, y); err != nil {
			core.Logger().Warn("resize skipped, cannot move window", "err", err)
			return
		}
		// The window moved under the cursor.
		l.Data.Cursor[0] -= float32(newX - x)
	}
	if newW != w || newH != h {
		l.window.RequestInnerSize(newW, newH)
	}
	l.window.RequestRedraw()
}

// resizeFor computes the new size and outer x for a cursor movement of
// delta on a held edge. Only the axes of that edge change. Left edges keep
// the right edge anchored.
func resizeFor(edge Edge, delta [2]float32, w, h, x int) (newW, newH, newX int) {
	newW, newH, newX = w, h, x

	switch edge {
	case EdgeLeft, EdgeBottomLeft:
		newW = clampSize(float32(w) - delta[0])
		newX = x + (w - newW)
	case EdgeRight, EdgeBottomRight:
		newW = clampSize(float32(w) + delta[0])
	}
	switch edge {
	case EdgeBottom, EdgeBottomLeft, EdgeBottomRight:
		newH = clampSize(float32(h) + delta[1])
	}
	return newW, newH, newX
}

func clampSize(v float32) int {
	if v < MinWindowSize {
		return MinWindowSize
	}
	return int(v)
}

// hover updates the highlight of the element under the cursor and reports
// whether any element color changed.
func (l *Logic) hover() bool {
	changed := false
	cursor, window := l.Data.Cursor, l.windowSize()
	l.shared.With(func(iface *ui.Interface) {
		id, ok := iface.TopmostAt(cursor, window)
		if !ok {
			id = ui.NoID
		}
		if id != l.Data.CurrentHover {
			if iface.SetHighlight(l.Data.CurrentHover, 0) {
				changed = true
			}
			l.Data.PreviousHover = l.Data.CurrentHover
			l.Data.CurrentHover = id
		}
		if id != ui.NoID && iface.SetHighlight(id, HoverAlpha) {
			changed = true
		}
	})
	return changed
}

// click resolves the topmost element under the cursor and carries out the
// window action it asks for.
func (l *Logic) click() {
	var res ui.InteractionResult
	cursor, window := l.Data.Cursor, l.windowSize()
	l.shared.With(func(iface *ui.Interface) {
		res = iface.Click(cursor, window)
	})
	if res.Kind != ui.ResultPropagate {
		return
	}

	switch res.Event.Kind {
	case ui.EventCloseRequested:
		l.requestClose()
	case ui.EventSetMinimized:
		if err := l.window.SetMinimized(true); err != nil {
			core.Logger().Warn("minimize", "err", err)
		}
	case ui.EventResizeRequested:
		maximized := l.window.IsMaximized()
		if err := l.window.SetMaximized(!maximized); err != nil {
			core.Logger().Warn("toggle maximize", "maximized", maximized, "err", err)
		}
	case ui.EventTitleBar:
		if err := l.window.BeginDrag(); err != nil {
			core.Logger().Warn("title bar drag", "err", err)
		}
	case ui.EventSetSelected:
		l.Data.Selection = res.Event.ID
	}
}

// typeKey applies a key press to the selected text box.
func (l *Logic) typeKey(e core.EventKeyboard) bool {
	if l.Data.Selection == ui.NoID {
		return false
	}
	var fragment string
	switch e.Key {
	case core.KeySpace:
		fragment = " "
	case core.KeyEnter:
		fragment = "\n"
	case core.KeyCharacter:
		fragment = e.Text
	case core.KeyBackspace:
	case core.KeyUnidentified, core.KeyDead:
		core.Logger().Debug("key ignored", "key", e.Key, "scancode", e.Scancode)
		return false
	default:
		return false
	}

	changed := false
	id := l.Data.Selection
	l.shared.With(func(iface *ui.Interface) {
		if !iface.IsTextBox(id) {
			return
		}
		if e.Key == core.KeyBackspace {
			changed = iface.DeleteLastRune(id)
			return
		}
		changed = iface.AppendText(id, fragment)
	})
	return changed
}

// editing reports whether a text box is selected.
func (l *Logic) editing() bool {
	if l.Data.Selection == ui.NoID {
		return false
	}
	selected := false
	l.shared.With(func(iface *ui.Interface) { selected = iface.IsTextBox(l.Data.Selection) })
	return selected
}

func (l *Logic) updateInstances() {
	dev, window := l.device(), l.windowSize()
	l.shared.With(func(iface *ui.Interface) {
		if err := iface.UpdateInstances(dev, window); err != nil {
			core.Logger().Error("update interface instances", "err", err)
		}
	})
}

// renderFrame draws one frame. Lost and outdated surfaces are reconfigured
// to the current window size; any other failure drops the frame.
func (l *Logic) renderFrame() {
	if l.render == nil {
		return
	}
	err := l.render.Render()
	switch {
	case err == nil:
	case errors.Is(err, core.ErrSurfaceLost), errors.Is(err, core.ErrSurfaceOutdated):
		w, h := l.window.InnerSize()
		core.Logger().Debug("surface reconfigured", "err", err, "w", w, "h", h)
		l.render.Resize(w, h)
	default:
		core.Logger().Error("unable to render", "err", err)
	}
}

func (l *Logic) requestClose() {
	l.closed = true
	l.window.RequestClose()
}
