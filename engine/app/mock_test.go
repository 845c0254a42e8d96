package app

import (
	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/ui"
)

type mockWindow struct {
	w, h      int
	x, y      int
	icon      core.CursorIcon
	icons     []core.CursorIcon
	minimized bool
	maximized bool
	drags     int
	closed    bool
	redraws   int
	requested [][2]int
	posErr    error
	dragErr   error

	cursor [2]float64
	drag   core.WindowDrag
}

func newMockWindow(w, h int) *mockWindow {
	return &mockWindow{w: w, h: h, x: 100, y: 50}
}

// cursorMoved follows an active drag the way the platform window does
// before the move reaches the router.
func (m *mockWindow) cursorMoved(x, y float64) {
	m.cursor = [2]float64{x, y}
	if nx, ny, ok := m.drag.Move(m.x, m.y, x, y); ok {
		m.x, m.y = nx, ny
	}
}

func (m *mockWindow) SetCursorIcon(icon core.CursorIcon) error {
	m.icon = icon
	m.icons = append(m.icons, icon)
	return nil
}

func (m *mockWindow) InnerSize() (int, int) { return m.w, m.h }

func (m *mockWindow) SetMinimized(v bool) error { m.minimized = v; return nil }
func (m *mockWindow) SetMaximized(v bool) error { m.maximized = v; return nil }
func (m *mockWindow) IsMaximized() bool         { return m.maximized }

func (m *mockWindow) BeginDrag() error {
	m.drags++
	if m.dragErr != nil {
		return m.dragErr
	}
	m.drag.Begin(m.cursor[0], m.cursor[1])
	return nil
}

func (m *mockWindow) OuterPosition() (int, int, error) {
	if m.posErr != nil {
		return 0, 0, m.posErr
	}
	return m.x, m.y, nil
}

func (m *mockWindow) SetOuterPosition(x, y int) error {
	m.x, m.y = x, y
	return nil
}

func (m *mockWindow) RequestInnerSize(w, h int) (int, int, bool) {
	m.requested = append(m.requested, [2]int{w, h})
	m.w, m.h = w, h
	return w, h, true
}

func (m *mockWindow) RequestRedraw() { m.redraws++ }
func (m *mockWindow) RequestClose()  { m.closed = true }

type mockRender struct {
	resizes [][2]int
	renders int
	err     error
}

func (r *mockRender) Device() core.Device { return nil }
func (r *mockRender) Resize(w, h int)     { r.resizes = append(r.resizes, [2]int{w, h}) }

func (r *mockRender) Render() error {
	r.renders++
	return r.err
}

func testAtlas() *atlas.Atlas {
	a := atlas.New(64, 16)
	a.Add(atlas.Solid, 1, 1, 2, 2)
	for _, name := range []string{ui.IconClose, ui.IconMaximize, ui.IconMinimize} {
		a.Add(name, 4, 0, 12, 12)
	}
	return a
}

// newTestLogic builds a router over an 800x800 mock window and builds the
// interface once.
func newTestLogic(build func(u *ui.UserInterface)) (*Logic, *mockWindow, *mockRender, *ui.Shared) {
	win := newMockWindow(800, 800)
	rt := &mockRender{}
	shared := ui.NewShared(nil)
	l := NewLogic(win, shared, testAtlas(), nil, build)
	l.SetRenderTarget(rt)
	if err := l.RebuildInterface(); err != nil {
		panic(err)
	}
	return l, win, rt, shared
}

func move(l *Logic, x, y float64) error {
	if m, ok := l.window.(*mockWindow); ok {
		m.cursorMoved(x, y)
	}
	return l.HandleEvent(core.EventCursorMoved{X: x, Y: y})
}

func press(l *Logic) error {
	return l.HandleEvent(core.EventMouseInput{Button: core.MouseLeft, Pressed: true})
}

func release(l *Logic) error {
	if m, ok := l.window.(*mockWindow); ok {
		m.drag.End()
	}
	return l.HandleEvent(core.EventMouseInput{Button: core.MouseLeft, Pressed: false})
}
