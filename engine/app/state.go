package app

import "github.com/hubastard/canopy/engine/ui"

type AppState int

const (
	StateDefault AppState = iota
	// StateResizing is entered on a mouse-down inside a resize zone and
	// left on mouse-up, or when the held edge is lost mid-drag.
	StateResizing
)

func (s AppState) String() string {
	if s == StateResizing {
		return "resizing"
	}
	return "default"
}

// AppData is all the router keeps between events.
type AppData struct {
	State         AppState
	CurrentHover  ui.ID
	PreviousHover ui.ID
	Selection     ui.ID
	// Cursor is the last cursor position, window-relative. Resize deltas
	// are taken against it.
	Cursor [2]float32
	// HeldEdge is the edge grabbed when the resize started.
	HeldEdge Edge
}

func NewAppData() AppData {
	return AppData{
		State:         StateDefault,
		CurrentHover:  ui.NoID,
		PreviousHover: ui.NoID,
		Selection:     ui.NoID,
	}
}
