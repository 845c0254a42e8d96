package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/geometry"
)

func panelAt(x, y, w, h float32) *UIPanel {
	return Panel([2]float32{x, y}, [2]float32{w, h}, colors.White)
}

func TestAddAllocatesLowestFreeID(t *testing.T) {
	iface := New(testAtlas(), nil)

	a := iface.Add(panelAt(0.5, 0.5, 1, 1))
	b, err := iface.AddWithID(panelAt(0.5, 0.5, 1, 1), 5)
	if err != nil {
		t.Fatalf("AddWithID() error = %v", err)
	}
	c := iface.Add(panelAt(0.5, 0.5, 1, 1))

	got := []ID{a, b, c}
	want := []ID{0, 5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids = %v, want %v", got, want)
			break
		}
	}
}

func TestAddSkipsReservedAndUsedIDs(t *testing.T) {
	iface := New(testAtlas(), nil)
	iface.Reserve(0, 2)
	if _, err := iface.AddWithID(panelAt(0.5, 0.5, 1, 1), 1); err != nil {
		t.Fatalf("AddWithID() error = %v", err)
	}

	if got := iface.Add(panelAt(0.5, 0.5, 1, 1)); got != 3 {
		t.Errorf("Add() = %d, want 3", got)
	}
	if got := iface.Add(panelAt(0.5, 0.5, 1, 1)); got != 4 {
		t.Errorf("Add() = %d, want 4", got)
	}

	// Reserved ids can still be claimed explicitly.
	if id, err := iface.AddWithID(panelAt(0.5, 0.5, 1, 1), 0); err != nil || id != 0 {
		t.Errorf("AddWithID(0) = %d, %v, want 0, nil", id, err)
	}
}

func TestAddWithIDErrors(t *testing.T) {
	iface := New(testAtlas(), nil)
	iface.Add(panelAt(0.5, 0.5, 1, 1))

	if _, err := iface.AddWithID(panelAt(0.5, 0.5, 1, 1), 0); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("AddWithID(0) error = %v, want ErrDuplicateID", err)
	}
	if _, err := iface.AddWithID(panelAt(0.5, 0.5, 1, 1), NoID); !errors.Is(err, ErrInvalidID) {
		t.Errorf("AddWithID(NoID) error = %v, want ErrInvalidID", err)
	}
	if iface.Len() != 1 {
		t.Errorf("Len() = %d, want 1", iface.Len())
	}
}

func TestTopmostAt(t *testing.T) {
	iface := New(testAtlas(), nil)
	bg := iface.Add(panelAt(0.5, 0.5, 1, 1))
	small := iface.Add(Button([2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.Red, func() {}))
	iface.Add(Label("ignored", [2]float32{0.5, 0.5}, [2]float32{0.05, 0.05}, colors.White))
	iface.Add(Icon([2]float32{0.5, 0.5}, [2]float32{4, 4}, colors.White, IconClose))

	tests := []struct {
		name   string
		cursor [2]float32
		want   ID
		hit    bool
	}{
		{"center picks smaller", [2]float32{400, 400}, small, true},
		{"outside small", [2]float32{100, 100}, bg, true},
		{"inclusive edge", [2]float32{440, 440}, small, true},
		{"outside window", [2]float32{900, 900}, NoID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := iface.TopmostAt(tt.cursor, window)
			if got != tt.want || ok != tt.hit {
				t.Errorf("TopmostAt(%v) = %d, %v, want %d, %v", tt.cursor, got, ok, tt.want, tt.hit)
			}
		})
	}
}

func TestTopmostAtEqualSizeLaterWins(t *testing.T) {
	iface := New(testAtlas(), nil)
	iface.Add(panelAt(0.5, 0.5, 0.2, 0.2))
	second := iface.Add(panelAt(0.5, 0.5, 0.2, 0.2))

	if got, _ := iface.TopmostAt([2]float32{400, 400}, window); got != second {
		t.Errorf("TopmostAt() = %d, want %d", got, second)
	}
}

func TestClick(t *testing.T) {
	iface := New(testAtlas(), nil)
	clicked := 0
	if _, err := iface.AddWithID(panelAt(0.5, 0.01, 1, 0.02), TitleBarID); err != nil {
		t.Fatal(err)
	}
	iface.Add(panelAt(0.5, 0.5, 1, 0.5))
	iface.Add(Button([2]float32{0.25, 0.5}, [2]float32{0.1, 0.1}, colors.Red, func() { clicked++ }))
	iface.Add(PropButton([2]float32{0.75, 0.5}, [2]float32{0.1, 0.1}, colors.Red, CloseRequested))
	box := iface.Add(TextBox("type", [2]float32{0.5, 0.9}, [2]float32{0.5, 0.1}, colors.Gray, colors.White))

	tests := []struct {
		name   string
		cursor [2]float32
		want   InteractionResult
	}{
		{"title bar", [2]float32{400, 8}, Propagate(TitleBar())},
		{"plain panel", [2]float32{400, 300}, InteractionResult{}},
		{"callback button", [2]float32{200, 400}, Success()},
		{"propagating button", [2]float32{600, 400}, Propagate(CloseRequested())},
		{"text box", [2]float32{400, 720}, Propagate(SetSelected(box))},
		{"nothing", [2]float32{400, 100}, InteractionResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := iface.Click(tt.cursor, window); got != tt.want {
				t.Errorf("Click(%v) = %+v, want %+v", tt.cursor, got, tt.want)
			}
		})
	}
	if clicked != 1 {
		t.Errorf("callback ran %d times, want 1", clicked)
	}
}

func TestAutoIDZeroPanelIsNotTitleBar(t *testing.T) {
	iface := New(testAtlas(), nil)
	id := iface.Add(panelAt(0.5, 0.5, 1, 1))
	if id != TitleBarID {
		t.Fatalf("Add() = %d, want %d", id, TitleBarID)
	}
	if got := iface.Click([2]float32{400, 400}, window); got != (InteractionResult{}) {
		t.Errorf("Click() = %+v, want no result", got)
	}
}

func TestSetHighlight(t *testing.T) {
	iface := New(testAtlas(), nil)
	btn := iface.Add(Button([2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.MustHex("#30363d00"), nil))
	panel := iface.Add(panelAt(0.5, 0.5, 1, 1))

	if !iface.SetHighlight(btn, 0.5) {
		t.Fatal("SetHighlight(0.5) = false, want true")
	}
	el, _ := iface.Element(btn)
	if a := el.Color().Alpha(); a != 0.5 {
		t.Errorf("alpha = %v, want 0.5", a)
	}
	if iface.SetHighlight(btn, 0.5) {
		t.Error("repeated SetHighlight(0.5) = true, want false")
	}
	if !iface.SetHighlight(btn, 0) {
		t.Error("SetHighlight(0) = false, want true")
	}
	if a := el.Color().Alpha(); a != 0 {
		t.Errorf("restored alpha = %v, want 0", a)
	}
	if iface.SetHighlight(panel, 0.5) {
		t.Error("panel SetHighlight = true, want false")
	}
	if iface.SetHighlight(99, 0.5) {
		t.Error("unknown id SetHighlight = true, want false")
	}
}

func TestHighlightKeepsOpaqueColor(t *testing.T) {
	b := Button([2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.Red, nil)
	if b.SetHighlight(0.5) {
		t.Error("SetHighlight on opaque button = true, want false")
	}
	if a := b.Color().Alpha(); a != 1 {
		t.Errorf("alpha = %v, want 1", a)
	}
}

func TestTextEditing(t *testing.T) {
	iface := New(testAtlas(), nil)
	box := iface.Add(TextBox("name", [2]float32{0.5, 0.5}, [2]float32{0.5, 0.1}, colors.Gray, colors.White))
	label := iface.Add(Label("x", [2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.White))

	for _, s := range []string{"a", " ", "é", ""} {
		iface.AppendText(box, s)
	}
	el, _ := iface.Element(box)
	if got, want := el.(*UITextBox).Text(), "a é"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if !iface.DeleteLastRune(box) {
		t.Error("DeleteLastRune() = false, want true")
	}
	if got := el.(*UITextBox).Text(); got != "a " {
		t.Errorf("Text() after delete = %q, want %q", got, "a ")
	}
	if iface.AppendText(label, "nope") {
		t.Error("AppendText on label = true, want false")
	}
	if !iface.IsTextBox(box) || iface.IsTextBox(label) {
		t.Error("IsTextBox mismatch")
	}
}

func TestRebuildBuffersAllocatesExactSizes(t *testing.T) {
	brush := &fakeBrush{}
	iface := New(testAtlas(), brush)
	iface.Add(panelAt(0.5, 0.5, 1, 1))
	iface.Add(Button([2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.Red, nil))
	iface.Add(Label("hi", [2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.White))

	dev := &mockDevice{}
	if err := iface.RebuildBuffers(dev, window); err != nil {
		t.Fatalf("RebuildBuffers() error = %v", err)
	}

	if got := iface.InstanceCount(geometry.Quad); got != 2 {
		t.Errorf("quad instances = %d, want 2", got)
	}
	if got := iface.InstanceCount(geometry.LabelQuad); got != 1 {
		t.Errorf("label instances = %d, want 1", got)
	}

	inst := dev.live(core.BufferInstance)
	if len(inst) != 2 {
		t.Fatalf("instance buffers = %d, want 2", len(inst))
	}
	if inst[0].Size() != 2*geometry.InstanceSize || inst[1].Size() != geometry.InstanceSize {
		t.Errorf("instance sizes = %d, %d", inst[0].Size(), inst[1].Size())
	}
	for _, b := range dev.live(core.BufferVertex) {
		if b.Size() != 4*geometry.VertexSize {
			t.Errorf("vertex buffer size = %d, want %d", b.Size(), 4*geometry.VertexSize)
		}
	}
	for _, b := range dev.live(core.BufferIndex) {
		if b.Size() != 6*geometry.IndexSize {
			t.Errorf("index buffer size = %d, want %d", b.Size(), 6*geometry.IndexSize)
		}
	}

	sections := brush.last()
	if len(sections) != 1 {
		t.Fatalf("queued sections = %d, want 1", len(sections))
	}
	// 2 bytes at 10px each, 16px high, centered on (400, 400).
	if want := [2]float32{390, 392}; sections[0].Position != want {
		t.Errorf("text position = %v, want %v", sections[0].Position, want)
	}

	// A second rebuild releases the first set.
	before := len(dev.buffers)
	if err := iface.RebuildBuffers(dev, window); err != nil {
		t.Fatal(err)
	}
	for _, b := range dev.buffers[:before] {
		if !b.released {
			t.Errorf("buffer %q not released on rebuild", b.desc.Label)
		}
	}
}

func TestRebuildBuffersNilDevice(t *testing.T) {
	iface := New(testAtlas(), &fakeBrush{})
	iface.Add(panelAt(0.5, 0.5, 1, 1))
	if err := iface.RebuildBuffers(nil, window); err != nil {
		t.Fatalf("RebuildBuffers(nil) error = %v", err)
	}
	if got := iface.InstanceCount(geometry.Quad); got != 0 {
		t.Errorf("quad instances = %d, want 0", got)
	}
}

func TestRebuildBuffersMissingTexture(t *testing.T) {
	iface := New(testAtlas(), nil)
	iface.Add(panelAt(0.5, 0.5, 1, 1).Texture("nope"))
	err := iface.RebuildBuffers(&mockDevice{}, window)
	if !errors.Is(err, atlas.ErrMissingTexture) {
		t.Errorf("RebuildBuffers() error = %v, want ErrMissingTexture", err)
	}
}

func TestRebuildBuffersCreateFailureReleases(t *testing.T) {
	iface := New(testAtlas(), nil)
	iface.Add(panelAt(0.5, 0.5, 1, 1))
	dev := &mockDevice{fail: true, failOn: core.BufferInstance}
	if err := iface.RebuildBuffers(dev, window); err == nil {
		t.Fatal("RebuildBuffers() error = nil, want failure")
	}
	for _, b := range dev.buffers {
		if !b.released {
			t.Errorf("buffer %q leaked", b.desc.Label)
		}
	}
}

func TestUpdateInstancesRewritesWithoutReallocating(t *testing.T) {
	iface := New(testAtlas(), nil)
	btn := iface.Add(Button([2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.MustHex("#ff000000"), nil))
	dev := &mockDevice{}
	if err := iface.RebuildBuffers(dev, window); err != nil {
		t.Fatal(err)
	}
	created := len(dev.buffers)

	iface.SetHighlight(btn, 0.5)
	if err := iface.UpdateInstances(dev, window); err != nil {
		t.Fatalf("UpdateInstances() error = %v", err)
	}
	if len(dev.buffers) != created {
		t.Errorf("buffers created = %d, want %d", len(dev.buffers), created)
	}
	inst := dev.live(core.BufferInstance)[0]
	want := geometry.AppendInstanceBytes(nil, []geometry.Instance{{
		Type:     geometry.Quad,
		Position: [2]float32{400, 400},
		Scale:    [2]float32{80, 80},
		Color:    colors.Color{1, 0, 0, 0.5},
		UV:       atlas.FromPixels(1, 1, 2, 2, 64, 16),
	}})
	if string(inst.data) != string(want) {
		t.Errorf("instance bytes = %v, want %v", inst.data, want)
	}
}

func TestUpdateInstancesFallsBackToRebuild(t *testing.T) {
	iface := New(testAtlas(), nil)
	iface.Add(panelAt(0.5, 0.5, 1, 1))
	dev := &mockDevice{}
	if err := iface.RebuildBuffers(dev, window); err != nil {
		t.Fatal(err)
	}
	iface.Add(Label("late", [2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.White))
	if err := iface.UpdateInstances(dev, window); err != nil {
		t.Fatalf("UpdateInstances() error = %v", err)
	}
	if got := iface.InstanceCount(geometry.LabelQuad); got != 1 {
		t.Errorf("label instances = %d, want 1", got)
	}
}

func TestDrawOrder(t *testing.T) {
	brush := &fakeBrush{}
	iface := New(testAtlas(), brush)
	iface.Add(Label("first", [2]float32{0.5, 0.5}, [2]float32{0.1, 0.1}, colors.White))
	iface.Add(panelAt(0.5, 0.5, 1, 1))
	iface.Add(panelAt(0.5, 0.5, 0.5, 0.5))
	dev := &mockDevice{}
	if err := iface.RebuildBuffers(dev, window); err != nil {
		t.Fatal(err)
	}

	pass := &recordingPass{}
	iface.Draw(pass)

	want := []drawCall{{6, 2}, {6, 1}}
	if len(pass.draws) != len(want) {
		t.Fatalf("draws = %v, want %v", pass.draws, want)
	}
	for i := range want {
		if pass.draws[i] != want[i] {
			t.Errorf("draw %d = %v, want %v", i, pass.draws[i], want[i])
		}
	}
	if pass.log[0] != "slot0:quad vertex buffer" {
		t.Errorf("first bind = %q", pass.log[0])
	}
	if brush.drawn != 1 {
		t.Errorf("brush drawn %d times, want 1", brush.drawn)
	}
}

func TestTextBoxBlink(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tb := TextBox("hint", [2]float32{0.5, 0.5}, [2]float32{0.5, 0.1}, colors.Gray, colors.White)

	if got := tb.RenderText(start); got != "hint" {
		t.Errorf("empty RenderText() = %q, want placeholder", got)
	}
	tb.AppendText("go")

	steps := []struct {
		at   time.Duration
		want string
	}{
		{100 * time.Millisecond, "go"},
		{500 * time.Millisecond, "go|"},
		{700 * time.Millisecond, "go|"},
		{1000 * time.Millisecond, "go"},
		{1600 * time.Millisecond, "go|"},
	}
	for _, s := range steps {
		if got := tb.RenderText(start.Add(s.at)); got != s.want {
			t.Errorf("RenderText(+%v) = %q, want %q", s.at, got, s.want)
		}
	}
	if tb.Text() != "go" {
		t.Errorf("Text() = %q, stored text must not carry the cursor", tb.Text())
	}
}

func TestTextBoxPositionIgnoresCursor(t *testing.T) {
	tb := TextBox("", [2]float32{0.5, 0.5}, [2]float32{0.5, 0.1}, colors.Gray, colors.White)
	tb.AppendText("abcd")
	m := &fakeBrush{}
	start := time.Now()
	a := tb.TextPosition(window, m, start)
	tb.RenderText(start)
	tb.RenderText(start.Add(BlinkInterval))
	b := tb.TextPosition(window, m, start.Add(BlinkInterval))
	if a != b || a != [2]float32{380, 392} {
		t.Errorf("TextPosition = %v then %v, want [380 392]", a, b)
	}
}

func TestIconScaleIsPixels(t *testing.T) {
	icon := Icon([2]float32{0.5, 0.5}, [2]float32{12, 12}, colors.White, IconClose)
	for _, w := range [][2]float32{{800, 800}, {1920, 1080}} {
		if got := icon.Scale(w); got != [2]float32{12, 12} {
			t.Errorf("Scale(%v) = %v, want [12 12]", w, got)
		}
	}
	if got := icon.Position([2]float32{1000, 500}); got != [2]float32{500, 250} {
		t.Errorf("Position() = %v, want [500 250]", got)
	}
}

func TestSharedReplaceReleasesPrevious(t *testing.T) {
	old := New(testAtlas(), nil)
	old.Add(panelAt(0.5, 0.5, 1, 1))
	dev := &mockDevice{}
	if err := old.RebuildBuffers(dev, window); err != nil {
		t.Fatal(err)
	}
	shared := NewShared(old)
	shared.Replace(New(testAtlas(), nil))
	for _, b := range dev.buffers {
		if !b.released {
			t.Errorf("buffer %q not released", b.desc.Label)
		}
	}

	calls := 0
	shared.With(func(iface *Interface) {
		if iface == old {
			t.Error("With() saw the replaced interface")
		}
		calls++
	})
	if calls != 1 {
		t.Errorf("With() ran %d times, want 1", calls)
	}
	NewShared(nil).With(func(*Interface) { t.Error("With() ran without an interface") })
}
