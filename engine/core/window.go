package core

import (
	"errors"
	"time"
)

// ErrUnsupported is returned (wrapped) by window capabilities the current
// platform cannot provide.
var ErrUnsupported = errors.New("capability not supported on this platform")

// CursorIcon selects the system cursor shape.
type CursorIcon int

const (
	CursorDefault CursorIcon = iota
	CursorText
	CursorPointer
	CursorEWResize   // left/right edge
	CursorNSResize   // bottom edge
	CursorNESWResize // bottom-left corner
	CursorNWSEResize // bottom-right corner
)

func (c CursorIcon) String() string {
	switch c {
	case CursorText:
		return "text"
	case CursorPointer:
		return "pointer"
	case CursorEWResize:
		return "ew-resize"
	case CursorNSResize:
		return "ns-resize"
	case CursorNESWResize:
		return "nesw-resize"
	case CursorNWSEResize:
		return "nwse-resize"
	default:
		return "default"
	}
}

// Shim is the set of window capabilities the UI runtime calls into.
// Everything except RequestRedraw and RequestClose may be unavailable on a
// given platform and reports that through an error.
type Shim interface {
	SetCursorIcon(icon CursorIcon) error
	InnerSize() (w, h int)
	SetMinimized(minimized bool) error
	SetMaximized(maximized bool) error
	IsMaximized() bool
	BeginDrag() error
	OuterPosition() (x, y int, err error)
	SetOuterPosition(x, y int) error
	// RequestInnerSize asks for a new client size. ok is false when the
	// request is applied asynchronously; w,h are the applied size otherwise.
	RequestInnerSize(w, h int) (aw, ah int, ok bool)
	RequestRedraw()
	RequestClose()
}

// Window is the full platform window driven by Run.
type Window interface {
	Shim
	WaitEvents(timeout time.Duration)
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	// TakeRedrawRequest reports and clears a pending RequestRedraw.
	TakeRedrawRequest() bool
	Destroy()
}
