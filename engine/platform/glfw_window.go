// Package platform provides the GLFW window behind core.Window.
package platform

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/canopy/engine/core"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w       *glfw.Window
	onEv    func(core.Event)
	cursors map[core.CursorIcon]*glfw.Cursor
	redraw  bool
	drag    core.WindowDrag
}

// NewGLFWWindow creates the window and makes its GL 3.3 core context
// current. Must be called on the main thread.
func NewGLFWWindow(cfg core.Config) (core.Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
	glfw.WindowHint(glfw.Decorated, boolHint(cfg.Decorated))
	glfw.WindowHint(glfw.Maximized, boolHint(cfg.Maximized))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	gw := &GLFWWindow{w: win, cursors: make(map[core.CursorIcon]*glfw.Cursor)}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(w *glfw.Window) {
		// The app decides whether to close.
		w.SetShouldClose(false)
		gw.emit(core.EventCloseRequested{})
	})
	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResized{W: w, H: h})
	})
	win.SetRefreshCallback(func(*glfw.Window) { gw.RequestRedraw() })
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.dragTo(x, y)
		gw.emit(core.EventCursorMoved{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if b == glfw.MouseButtonLeft && action == glfw.Release {
			gw.drag.End()
		}
		gw.emit(core.EventMouseInput{Button: translateButton(b), Pressed: action == glfw.Press})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k, ok := translateKey(key)
		if !ok {
			return
		}
		gw.emit(core.EventKeyboard{
			Key:      k,
			Pressed:  action != glfw.Release,
			Mods:     translateMods(mods),
			Scancode: scancode,
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		if r == ' ' {
			return // delivered as KeySpace
		}
		gw.emit(core.EventKeyboard{Key: core.KeyCharacter, Text: string(r), Pressed: true})
	})

	return gw, nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// capture turns a GLFW error panic into an error. GLFW 3.3 reports
// platform failures (e.g. window positioning under Wayland) that way.
func capture(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w: %v", op, core.ErrUnsupported, r)
		}
	}()
	fn()
	return nil
}

// ---- core.Window ----

// WaitEvents blocks for at most timeout, or just polls when a redraw is
// already pending.
func (g *GLFWWindow) WaitEvents(timeout time.Duration) {
	if g.redraw {
		glfw.PollEvents()
		return
	}
	glfw.WaitEventsTimeout(timeout.Seconds())
}

func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

func (g *GLFWWindow) TakeRedrawRequest() bool {
	r := g.redraw
	g.redraw = false
	return r
}

func (g *GLFWWindow) Destroy() {
	for _, c := range g.cursors {
		c.Destroy()
	}
	g.w.Destroy()
	glfw.Terminate()
}

// ---- core.Shim ----

func (g *GLFWWindow) InnerSize() (int, int) { return g.w.GetSize() }

// SetCursorIcon maps icons onto GLFW 3.3's standard cursors, which have no
// diagonal resize shapes; corners fall back to the crosshair.
func (g *GLFWWindow) SetCursorIcon(icon core.CursorIcon) error {
	if icon == core.CursorDefault {
		g.w.SetCursor(nil)
		return nil
	}
	c, ok := g.cursors[icon]
	if !ok {
		shape := glfw.ArrowCursor
		switch icon {
		case core.CursorText:
			shape = glfw.IBeamCursor
		case core.CursorPointer:
			shape = glfw.HandCursor
		case core.CursorEWResize:
			shape = glfw.HResizeCursor
		case core.CursorNSResize:
			shape = glfw.VResizeCursor
		case core.CursorNESWResize, core.CursorNWSEResize:
			shape = glfw.CrosshairCursor
		}
		if err := capture("create cursor", func() { c = glfw.CreateStandardCursor(shape) }); err != nil {
			return err
		}
		g.cursors[icon] = c
	}
	g.w.SetCursor(c)
	return nil
}

func (g *GLFWWindow) SetMinimized(minimized bool) error {
	if minimized {
		return capture("iconify", g.w.Iconify)
	}
	return capture("restore", g.w.Restore)
}

func (g *GLFWWindow) SetMaximized(maximized bool) error {
	if maximized {
		return capture("maximize", g.w.Maximize)
	}
	return capture("restore", g.w.Restore)
}

func (g *GLFWWindow) IsMaximized() bool {
	return g.w.GetAttrib(glfw.Maximized) == glfw.True
}

// BeginDrag moves the window with the cursor until the left button is
// released. GLFW 3.3 has no compositor-driven move, so the window is
// repositioned from the cursor callback.
func (g *GLFWWindow) BeginDrag() error {
	var x, y float64
	if err := capture("begin drag", func() { x, y = g.w.GetCursorPos() }); err != nil {
		return err
	}
	g.drag.Begin(x, y)
	return nil
}

// dragTo follows the cursor during a drag. A platform that cannot place
// windows ends the drag.
func (g *GLFWWindow) dragTo(cursorX, cursorY float64) {
	if !g.drag.Active() {
		return
	}
	ox, oy, err := g.OuterPosition()
	if err == nil {
		x, y, ok := g.drag.Move(ox, oy, cursorX, cursorY)
		if !ok {
			return
		}
		err = g.SetOuterPosition(x, y)
	}
	if err != nil {
		g.drag.End()
		core.Logger().Warn("window drag stopped", "err", err)
	}
}

func (g *GLFWWindow) OuterPosition() (x, y int, err error) {
	err = capture("get position", func() { x, y = g.w.GetPos() })
	return x, y, err
}

func (g *GLFWWindow) SetOuterPosition(x, y int) error {
	return capture("set position", func() { g.w.SetPos(x, y) })
}

// RequestInnerSize is applied by the window system later; the new size
// arrives as an EventResized.
func (g *GLFWWindow) RequestInnerSize(w, h int) (int, int, bool) {
	if err := capture("set size", func() { g.w.SetSize(w, h) }); err != nil {
		core.Logger().Warn("request inner size", "err", err)
	}
	return 0, 0, false
}

func (g *GLFWWindow) RequestRedraw() {
	if !g.redraw {
		g.redraw = true
		glfw.PostEmptyEvent()
	}
}

func (g *GLFWWindow) RequestClose() { g.w.SetShouldClose(true) }

func translateButton(b glfw.MouseButton) core.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft
	case glfw.MouseButtonRight:
		return core.MouseRight
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle
	default:
		return core.MouseOther
	}
}

// translateKey maps the keys that are not delivered as text. Printable keys
// arrive through the char callback instead.
func translateKey(k glfw.Key) (core.Key, bool) {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape, true
	case glfw.KeySpace:
		return core.KeySpace, true
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return core.KeyEnter, true
	case glfw.KeyBackspace:
		return core.KeyBackspace, true
	case glfw.KeyUnknown:
		return core.KeyUnidentified, true
	default:
		return 0, false
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
