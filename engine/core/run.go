package core

import (
	"runtime"
	"time"
)

// Run wires the platform window + GPU device and executes the main loop.
//
// Events are delivered to the App synchronously from inside WaitEvents, so
// every mutation an event causes has completed before the redraw it requested
// is dispatched on the same goroutine.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newDevice func(Window, Config) (Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	dev, err := newDevice(win, cfg)
	if err != nil {
		return err
	}

	dev.Resize(win.InnerSize())

	eng := &Engine{Window: win, Device: dev, Config: cfg, start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		if r, ok := ev.(EventResized); ok {
			if r.W < 1 || r.H < 1 {
				return
			}
		}
		app.OnEvent(eng, ev)
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}
	Logger().Info("engine started", "uptime", eng.Uptime())

	wait := cfg.WaitTimeout
	if wait <= 0 {
		wait = time.Second / 60
	}
	for !win.ShouldClose() {
		win.WaitEvents(wait)

		if win.TakeRedrawRequest() {
			app.OnEvent(eng, EventRedrawRequested{})
			win.SwapBuffers()
		}
	}

	app.OnShutdown(eng)
	Logger().Info("engine exit", "uptime", eng.Uptime())
	return nil
}
