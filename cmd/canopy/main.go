// Command canopy opens an undecorated window with a custom title bar, a
// clickable list and a text box.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hubastard/canopy/engine/app"
	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/core"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/platform"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/render"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

// Shell glues the engine loop to the UI router and render state.
type Shell struct {
	debug bool

	sheet  *image.RGBA
	atlas  *atlas.Atlas
	font   *text.Font
	brush  *text.Brush
	shared *ui.Shared
	device *glbackend.Device
	state  *render.State
	logic  *app.Logic
}

func (s *Shell) OnStart(e *core.Engine) error {
	vs, fs, err := assets.LoadProgram(filepath.Join(e.Config.AssetsDir, "shaders"), "ui")
	if err != nil {
		return err
	}
	w, h := e.Window.InnerSize()
	s.state, err = render.New(e.Device, s.shared, s.sheet, render.Shaders{Vertex: vs, Fragment: fs}, e.Config.ClearColor, w, h)
	if err != nil {
		return err
	}

	s.logic = app.NewLogic(e.Window, s.shared, s.atlas, s.brush, demo)
	s.logic.SetRenderTarget(s.state)
	if err := s.logic.RebuildInterface(); err != nil {
		return err
	}
	e.Window.RequestRedraw()
	return nil
}

func (s *Shell) OnEvent(e *core.Engine, ev core.Event) {
	if s.logic == nil {
		return
	}
	if err := s.logic.HandleEvent(ev); err != nil {
		core.Logger().Error("interface rebuild failed, closing", "err", err)
		e.Window.RequestClose()
		return
	}
	if _, ok := ev.(core.EventRedrawRequested); ok && s.debug {
		st := s.state.Stats()
		e.Window.SetTitle(fmt.Sprintf("%s | %d draws | %d instances | %d glyphs",
			e.Config.Title, st.DrawCalls, st.InstanceCount, s.brush.Count()))
	}
}

func (s *Shell) OnShutdown(e *core.Engine) {
	s.shared.Replace(nil)
	s.brush.Release()
	s.font.Close()
	if s.state != nil {
		s.state.Release()
	}
	if s.device != nil {
		s.device.Shutdown()
	}
}

// demo is the interface shown by the shell.
func demo(u *ui.UserInterface) {
	ui.Header(u)

	u.AddPanel([2]float32{0.25, 0.5}, "#161b22ff", [2]float32{0.4, 0.85}, "")
	ui.List(u, [2]float32{0.25, 0.1}, [2]float32{0.36, 0.6}, []ui.ListItem{
		{Color: "#21262d80", Label: "Inbox", OnClick: selected("inbox")},
		{Color: "#21262d80", Label: "Drafts", OnClick: selected("drafts")},
		{Color: "#21262d80", Label: "Sent", OnClick: selected("sent")},
		{Color: "#21262d80", Label: "Archive", OnClick: selected("archive")},
	})

	u.AddLabel("Notes", [2]float32{0.72, 0.12}, [2]float32{0.4, 0.05}, "#c9d1d9ff")
	u.AddTextBox("Click and type...", [2]float32{0.72, 0.4}, [2]float32{0.4, 0.4}, "#0d111780", "#c9d1d9ff")
}

func selected(name string) func() {
	return func() { core.Logger().Info("list item clicked", "item", name) }
}

func main() {
	cfg := core.DefaultConfig()
	var (
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
		fontPath   = flag.String("font", "", "TrueType font file; empty uses Go Regular")
		profileOut = flag.String("profile", "canopy.folded", "folded-stack output (profile builds only)")
		debug      = flag.Bool("debug", false, "show frame statistics in the title")
	)
	flag.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "initial window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "initial window height")
	flag.BoolVar(&cfg.Maximized, "maximized", cfg.Maximized, "start maximized")
	flag.BoolVar(&cfg.Decorated, "decorated", cfg.Decorated, "use the system title bar")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "assets directory")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "canopy: %v\n", err)
		os.Exit(2)
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, *fontPath, *profileOut, *debug); err != nil {
		core.Logger().Error("canopy exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg core.Config, fontPath, profileOut string, debug bool) error {
	profiler.Init(1 << 16)
	defer func() {
		if !profiler.Enabled() {
			return
		}
		if err := profiler.Dump(profileOut); err != nil {
			core.Logger().Warn("profile not written", "err", err)
		}
	}()

	loaded, err := assets.LoadTextures(cfg.AssetsDir)
	if err != nil {
		return err
	}
	sheet, a := atlas.Pack(mergeSources(windowIcons(), loaded))

	var font *text.Font
	if fontPath != "" {
		font, err = text.LoadFont(fontPath, cfg.FontSize)
	} else {
		font, err = text.DefaultFont(cfg.FontSize)
	}
	if err != nil {
		return err
	}

	shell := &Shell{
		debug:  debug,
		sheet:  sheet,
		atlas:  a,
		font:   font,
		brush:  text.NewBrush(font),
		shared: ui.NewShared(nil),
	}
	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newDevice := func(win core.Window, cfg core.Config) (core.Device, error) {
		dev, err := glbackend.NewDevice(win, cfg)
		if err != nil {
			return nil, err
		}
		shell.device = dev
		return dev, nil
	}
	return core.Run(shell, cfg, newWindow, newDevice)
}
