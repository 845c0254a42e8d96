package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/hubastard/canopy/engine/atlas"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/geometry"
	"github.com/hubastard/canopy/engine/profiler"
)

var (
	ErrDuplicateID = errors.New("element id already in use")
	ErrInvalidID   = errors.New("invalid element id")
)

// batch is the GPU state of every element sharing one geometry type.
// Instance order follows insertion order.
type batch struct {
	typ        geometry.Type
	instances  []geometry.Instance
	indexCount int

	vertex   core.Buffer
	index    core.Buffer
	instance core.Buffer
}

func (b *batch) release() {
	for _, buf := range []core.Buffer{b.vertex, b.index, b.instance} {
		if buf != nil {
			buf.Release()
		}
	}
	b.vertex, b.index, b.instance = nil, nil, nil
}

// Interface owns the elements of one UI build, their identities and the
// per-geometry GPU buffers they are drawn from. A new Interface is built on
// every rebuild; buffers are replaced wholesale, never patched.
type Interface struct {
	elements []Element
	index    map[ID]int
	used     map[ID]struct{}
	reserved map[ID]struct{}
	nextID   ID

	atlas   *atlas.Atlas
	brush   TextBrush
	batches map[geometry.Type]*batch
	now     func() time.Time
}

type Option func(*Interface)

// WithClock overrides the time source used for text cursor blinking.
func WithClock(now func() time.Time) Option {
	return func(iface *Interface) { iface.now = now }
}

// New creates an empty interface. brush may be nil, in which case no text
// is queued or drawn.
func New(a *atlas.Atlas, brush TextBrush, opts ...Option) *Interface {
	iface := &Interface{
		index:    make(map[ID]int),
		used:     make(map[ID]struct{}),
		reserved: make(map[ID]struct{}),
		atlas:    a,
		brush:    brush,
		batches:  make(map[geometry.Type]*batch),
		now:      time.Now,
	}
	for _, o := range opts {
		o(iface)
	}
	return iface
}

// Show runs build against a scoped builder and returns the first
// configuration error it recorded.
func (iface *Interface) Show(build func(ui *UserInterface)) error {
	ui := &UserInterface{iface: iface}
	build(ui)
	return ui.err
}

// Reserve keeps ids out of automatic allocation. They can still be claimed
// explicitly with AddWithID.
func (iface *Interface) Reserve(ids ...ID) {
	for _, id := range ids {
		iface.reserved[id] = struct{}{}
	}
}

// Add assigns el the lowest id that is neither in use nor reserved. An
// automatically assigned id never makes a panel the title bar, even when it
// equals TitleBarID; claim that with AddWithID.
func (iface *Interface) Add(el Element) ID {
	id := iface.nextID
	for {
		_, inUse := iface.used[id]
		_, isReserved := iface.reserved[id]
		if !inUse && !isReserved && id != NoID {
			break
		}
		id++
	}
	iface.nextID = id + 1
	iface.insert(el, id)
	return id
}

// AddWithID places el under an explicit id. A panel placed at TitleBarID
// becomes the window's drag handle.
func (iface *Interface) AddWithID(el Element, id ID) (ID, error) {
	if id == NoID {
		return NoID, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if _, ok := iface.used[id]; ok {
		return NoID, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	if p, ok := el.(*UIPanel); ok && id == TitleBarID {
		p.titleBar = true
	}
	iface.reserved[id] = struct{}{}
	iface.insert(el, id)
	return id, nil
}

func (iface *Interface) insert(el Element, id ID) {
	el.node().id = id
	iface.used[id] = struct{}{}
	iface.index[id] = len(iface.elements)
	iface.elements = append(iface.elements, el)
}

// Elements returns the elements in insertion order. Callers must not
// modify the slice.
func (iface *Interface) Elements() []Element { return iface.elements }

func (iface *Interface) Len() int { return len(iface.elements) }

func (iface *Interface) Element(id ID) (Element, bool) {
	i, ok := iface.index[id]
	if !ok {
		return nil, false
	}
	return iface.elements[i], true
}

// InstanceCount reports how many instances are resident for typ.
func (iface *Interface) InstanceCount(typ geometry.Type) int {
	if b, ok := iface.batches[typ]; ok {
		return len(b.instances)
	}
	return 0
}

// ---- GPU reconciliation ----

// collect builds one instance per element and groups them by geometry type.
// A texture name missing from the atlas is a configuration error.
func (iface *Interface) collect(window [2]float32) (map[geometry.Type][]geometry.Instance, error) {
	grouped := make(map[geometry.Type][]geometry.Instance, len(geometry.Types))
	for _, el := range iface.elements {
		uv, err := iface.atlas.Resolve(el.TextureName())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", el.ID(), err)
		}
		typ := el.GeometryType()
		grouped[typ] = append(grouped[typ], geometry.Instance{
			Type:     typ,
			Position: el.Position(window),
			Scale:    el.Scale(window),
			Color:    el.Color(),
			UV:       uv,
		})
	}
	return grouped, nil
}

// RebuildBuffers allocates one exactly-sized vertex/index/instance buffer
// triple per geometry type present and uploads everything. Textures are
// resolved first, so a missing atlas entry is reported even without a
// device; with no device it then logs and defers to the next rebuild.
func (iface *Interface) RebuildBuffers(dev core.Device, window [2]float32) error {
	defer profiler.Start("ui.RebuildBuffers")()

	grouped, err := iface.collect(window)
	if err != nil {
		return err
	}
	if dev == nil {
		core.Logger().Warn("render state not ready, deferring interface buffers", "elements", len(iface.elements))
		return nil
	}

	iface.Release()
	for _, typ := range geometry.Types {
		instances := grouped[typ]
		if len(instances) == 0 {
			continue
		}
		b, err := allocate(dev, typ, instances)
		if err != nil {
			iface.Release()
			return err
		}
		iface.batches[typ] = b
		core.Logger().Debug("interface batch allocated",
			"geometry", typ, "instances", len(instances), "instanceBytes", b.instance.Size())
	}
	return iface.upload(dev, window)
}

func allocate(dev core.Device, typ geometry.Type, instances []geometry.Instance) (*batch, error) {
	vertices, indices := geometry.Mesh(typ)
	b := &batch{typ: typ, instances: instances, indexCount: len(indices)}

	var err error
	if b.vertex, err = dev.CreateBuffer(core.BufferDesc{
		Label: typ.String() + " vertex buffer",
		Usage: core.BufferVertex,
		Size:  len(vertices) * geometry.VertexSize,
	}); err != nil {
		return nil, fmt.Errorf("create %v vertex buffer: %w", typ, err)
	}
	if b.index, err = dev.CreateBuffer(core.BufferDesc{
		Label: typ.String() + " index buffer",
		Usage: core.BufferIndex,
		Size:  len(indices) * geometry.IndexSize,
	}); err != nil {
		b.release()
		return nil, fmt.Errorf("create %v index buffer: %w", typ, err)
	}
	if b.instance, err = dev.CreateBuffer(core.BufferDesc{
		Label: typ.String() + " instance buffer",
		Usage: core.BufferInstance,
		Size:  len(instances) * geometry.InstanceSize,
	}); err != nil {
		b.release()
		return nil, fmt.Errorf("create %v instance buffer: %w", typ, err)
	}
	return b, nil
}

// UpdateInstances recomputes every instance and rewrites the existing
// buffers, then re-queues all text. When the element set no longer matches
// the allocated batches it falls back to RebuildBuffers.
func (iface *Interface) UpdateInstances(dev core.Device, window [2]float32) error {
	defer profiler.Start("ui.UpdateInstances")()

	if dev == nil {
		core.Logger().Warn("render state not ready, skipping instance update")
		return nil
	}
	grouped, err := iface.collect(window)
	if err != nil {
		return err
	}
	if !iface.matches(grouped) {
		core.Logger().Debug("instance layout changed, reallocating interface buffers")
		return iface.RebuildBuffers(dev, window)
	}
	for typ, b := range iface.batches {
		b.instances = grouped[typ]
	}
	return iface.upload(dev, window)
}

func (iface *Interface) matches(grouped map[geometry.Type][]geometry.Instance) bool {
	for _, typ := range geometry.Types {
		b, ok := iface.batches[typ]
		n := len(grouped[typ])
		if !ok {
			if n != 0 {
				return false
			}
			continue
		}
		if len(b.instances) != n {
			return false
		}
	}
	return true
}

func (iface *Interface) upload(dev core.Device, window [2]float32) error {
	for _, typ := range geometry.Types {
		b, ok := iface.batches[typ]
		if !ok {
			continue
		}
		vertices, indices := geometry.Mesh(typ)
		if err := dev.WriteBuffer(b.vertex, 0, geometry.AppendVertexBytes(nil, vertices)); err != nil {
			return fmt.Errorf("write %v vertices: %w", typ, err)
		}
		if err := dev.WriteBuffer(b.index, 0, geometry.AppendIndexBytes(nil, indices)); err != nil {
			return fmt.Errorf("write %v indices: %w", typ, err)
		}
		if err := dev.WriteBuffer(b.instance, 0, geometry.AppendInstanceBytes(nil, b.instances)); err != nil {
			return fmt.Errorf("write %v instances: %w", typ, err)
		}
	}
	return iface.queueText(dev, window)
}

// queueText hands every label and text box to the text brush.
func (iface *Interface) queueText(dev core.Device, window [2]float32) error {
	if iface.brush == nil {
		return nil
	}
	now := iface.now()
	sections := make([]TextSection, 0, len(iface.elements))
	for _, el := range iface.elements {
		te, ok := el.(TextElement)
		if !ok {
			continue
		}
		s := te.RenderText(now)
		if s == "" {
			continue
		}
		var bounds [2]float32
		if b, ok := te.WrapBounds(); ok {
			bounds = b
		}
		sections = append(sections, TextSection{
			Text:     s,
			Position: te.TextPosition(window, iface.brush, now),
			Color:    te.TextColor(),
			Bounds:   bounds,
			Size:     te.TextSize(),
		})
	}
	if err := iface.brush.Queue(dev, sections); err != nil {
		return fmt.Errorf("queue text: %w", err)
	}
	return nil
}

// Draw issues one instanced indexed draw per geometry type, in
// geometry.Types order, then draws the queued text on top.
func (iface *Interface) Draw(pass core.RenderPass) {
	for _, typ := range geometry.Types {
		b, ok := iface.batches[typ]
		if !ok || len(b.instances) == 0 {
			continue
		}
		pass.SetVertexBuffer(0, b.vertex)
		pass.SetVertexBuffer(1, b.instance)
		pass.SetIndexBuffer(b.index)
		pass.DrawIndexed(b.indexCount, len(b.instances))
	}
	if iface.brush != nil {
		iface.brush.Draw(pass)
	}
}

// Release frees every GPU buffer owned by the interface.
func (iface *Interface) Release() {
	for typ, b := range iface.batches {
		b.release()
		delete(iface.batches, typ)
	}
}

// ---- hit-testing ----

// TopmostAt resolves the element under cursor. Among all elements whose box
// contains the cursor, the one no larger than every other wins; equal sizes
// go to the one evaluated last.
func (iface *Interface) TopmostAt(cursor, window [2]float32) (ID, bool) {
	var top Element
	for _, el := range iface.elements {
		if !el.IsWithinBounds(cursor, el.Position(window), el.Scale(window)) {
			continue
		}
		if top == nil || el.LayerCompare(ExtentsOf(top, window), window) {
			top = el
		}
	}
	if top == nil {
		return NoID, false
	}
	return top.ID(), true
}

// Click dispatches a click to the topmost element under cursor.
func (iface *Interface) Click(cursor, window [2]float32) InteractionResult {
	id, ok := iface.TopmostAt(cursor, window)
	if !ok {
		return InteractionResult{}
	}
	el, _ := iface.Element(id)
	return el.HandleClick()
}

// SetHighlight forwards to the element; false when nothing changed.
func (iface *Interface) SetHighlight(id ID, alpha float32) bool {
	el, ok := iface.Element(id)
	if !ok {
		return false
	}
	return el.SetHighlight(alpha)
}

func (iface *Interface) AppendText(id ID, fragment string) bool {
	el, ok := iface.Element(id)
	if !ok {
		return false
	}
	return el.AppendText(fragment)
}

func (iface *Interface) DeleteLastRune(id ID) bool {
	el, ok := iface.Element(id)
	if !ok {
		return false
	}
	if tb, ok := el.(*UITextBox); ok {
		return tb.DeleteLastRune()
	}
	return false
}

// IsTextBox reports whether id names a text box.
func (iface *Interface) IsTextBox(id ID) bool {
	el, ok := iface.Element(id)
	if !ok {
		return false
	}
	_, ok = el.(*UITextBox)
	return ok
}

// CarryText copies typed text from prev's text boxes into the text boxes
// here that have the same id, so edits survive a rebuild.
func (iface *Interface) CarryText(prev *Interface) {
	if prev == nil {
		return
	}
	for _, el := range iface.elements {
		tb, ok := el.(*UITextBox)
		if !ok {
			continue
		}
		if old, ok := prev.Element(tb.id); ok {
			if ot, ok := old.(*UITextBox); ok {
				tb.text = ot.text
			}
		}
	}
}
