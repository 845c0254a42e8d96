package app

import "github.com/hubastard/canopy/engine/core"

// Resize-zone widths in pixels. The zone widens once a drag is under way so
// the held edge does not flicker in and out at the boundary.
const (
	DefaultEdgeZone  float32 = 2
	ResizingEdgeZone float32 = 50
)

// MinWindowSize is the floor applied to every computed width and height.
const MinWindowSize = 100

// Edge is the window border under the cursor. There are no top edges: the
// top of the window belongs to the title bar.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeBottom
	EdgeBottomLeft
	EdgeBottomRight
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeBottomLeft:
		return "bottom-left"
	case EdgeBottomRight:
		return "bottom-right"
	default:
		return "none"
	}
}

// ClassifyEdge maps the cursor to an edge using a zone of the given width.
// Being on both the left and right edges at once is only possible in a
// window narrower than two zones and yields EdgeNone.
func ClassifyEdge(cursor, window [2]float32, zone float32) Edge {
	left := cursor[0] <= zone
	right := cursor[0] >= window[0]-zone
	bottom := cursor[1] >= window[1]-zone

	switch {
	case left && right:
		return EdgeNone
	case left && bottom:
		return EdgeBottomLeft
	case right && bottom:
		return EdgeBottomRight
	case left:
		return EdgeLeft
	case right:
		return EdgeRight
	case bottom:
		return EdgeBottom
	default:
		return EdgeNone
	}
}

// CursorIcon is the system cursor shown while the edge is hovered or held.
func (e Edge) CursorIcon() core.CursorIcon {
	switch e {
	case EdgeLeft, EdgeRight:
		return core.CursorEWResize
	case EdgeBottom:
		return core.CursorNSResize
	case EdgeBottomLeft:
		return core.CursorNESWResize
	case EdgeBottomRight:
		return core.CursorNWSEResize
	default:
		return core.CursorDefault
	}
}
