package core

// Event model. Variants are closed over the unexported marker method.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventResized carries the new inner size in pixels.
type EventResized struct{ W, H int }

func (EventResized) isEvent() {}

type EventRedrawRequested struct{}

func (EventRedrawRequested) isEvent() {}

// EventCursorMoved carries the cursor position in window pixels, origin top-left.
type EventCursorMoved struct{ X, Y float64 }

func (EventCursorMoved) isEvent() {}

type EventMouseInput struct {
	Button  MouseButton
	Pressed bool
}

func (EventMouseInput) isEvent() {}

// EventKeyboard is a key press or release. For KeyCharacter, Text holds the
// produced characters.
type EventKeyboard struct {
	Key      Key
	Text     string
	Pressed  bool
	Mods     Mod
	Scancode int
}

func (EventKeyboard) isEvent() {}

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseOther
)

// Key is the logical key, without modifiers applied.
type Key int

const (
	KeyUnidentified Key = iota
	KeyDead
	KeyCharacter
	KeySpace
	KeyEnter
	KeyBackspace
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyDead:
		return "dead"
	case KeyCharacter:
		return "character"
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyEscape:
		return "escape"
	default:
		return "unidentified"
	}
}

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
