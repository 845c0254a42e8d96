package ui

// Atlas entry names used by Header.
const (
	IconClose    = "close"
	IconMaximize = "maximize"
	IconMinimize = "minimize"
)

// HeaderHeight is the title bar height as a fraction of the window.
const HeaderHeight float32 = 0.02

// Header adds the title bar: a drag panel at TitleBarID and the
// close/maximize/minimize buttons at its right end. The buttons are
// transparent until hovered.
func Header(ui *UserInterface) {
	y := HeaderHeight / 2
	ui.AddPanel([2]float32{0.5, y}, "#0d1117ff", [2]float32{1, HeaderHeight}, "", TitleBarID)

	buttons := []struct {
		x     float32
		hex   string
		emit  func() UiEvent
		icon  string
		pixel float32
	}{
		{0.99, "#5c030300", CloseRequested, IconClose, 10},
		{0.97, "#30363d00", ResizeRequested, IconMaximize, 12},
		{0.95, "#30363d00", SetMinimized, IconMinimize, 12},
	}
	for _, b := range buttons {
		ui.AddPropButton([2]float32{b.x, y}, b.hex, [2]float32{0.02, HeaderHeight}, b.emit, "")
		ui.AddIcon([2]float32{b.x, y}, "#ffffffff", [2]float32{b.pixel, b.pixel}, b.icon)
	}
}

// ListItem is one row of a List.
type ListItem struct {
	Color   string // hex
	Label   string
	OnClick func()
}

// List stacks items vertically between origin[1] and extent[1], each row
// extent[0] wide and centered on origin[0], with its label centered on the
// button. It returns the button ids in item order.
func List(ui *UserInterface, origin, extent [2]float32, items []ListItem) []ID {
	if len(items) == 0 {
		return nil
	}
	unit := (extent[1] - origin[1]) / float32(len(items))
	ids := make([]ID, 0, len(items))
	for i, it := range items {
		pos := [2]float32{origin[0], origin[1] + unit*float32(i) + unit/2}
		scale := [2]float32{extent[0], unit}
		onClick := it.OnClick
		if onClick == nil {
			onClick = func() {}
		}
		ids = append(ids, ui.AddButton(pos, it.Color, scale, onClick, ""))
		if it.Label != "" {
			ui.AddLabel(it.Label, pos, scale, "#ffffffff")
		}
	}
	return ids
}
