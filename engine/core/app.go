package core

import (
	"time"

	"github.com/hubastard/canopy/engine/colors"
)

// App defines the application hooks driven by Run.
type App interface {
	OnStart(e *Engine) error     // called once after window/device init
	OnEvent(e *Engine, ev Event) // window events, including redraw requests
	OnShutdown(e *Engine)        // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	Device Device
	Config Config
	start  time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Maximized  bool
	Decorated  bool
	ClearColor colors.Color
	AssetsDir  string
	FontSize   float32

	// WaitTimeout bounds how long the loop blocks waiting for OS events
	// when no redraw is pending.
	WaitTimeout time.Duration
}

// DefaultConfig mirrors the settings the demo shell starts from.
func DefaultConfig() Config {
	return Config{
		Title:       "canopy",
		Width:       1280,
		Height:      720,
		VSync:       true,
		Maximized:   true,
		Decorated:   false,
		ClearColor:  colors.Color{0x21 / 255.0, 0x26 / 255.0, 0x2d / 255.0, 1},
		AssetsDir:   "assets",
		FontSize:    16,
		WaitTimeout: time.Second / 60,
	}
}
