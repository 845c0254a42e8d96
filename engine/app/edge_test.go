package app

import (
	"testing"

	"github.com/hubastard/canopy/engine/core"
)

func TestClassifyEdge(t *testing.T) {
	window := [2]float32{800, 800}
	tests := []struct {
		name   string
		cursor [2]float32
		zone   float32
		want   Edge
	}{
		{"left mid-height", [2]float32{0, 400}, DefaultEdgeZone, EdgeLeft},
		{"bottom-right corner", [2]float32{800, 800}, DefaultEdgeZone, EdgeBottomRight},
		{"bottom-left corner", [2]float32{0, 800}, DefaultEdgeZone, EdgeBottomLeft},
		{"bottom", [2]float32{400, 800}, DefaultEdgeZone, EdgeBottom},
		{"right", [2]float32{800, 400}, DefaultEdgeZone, EdgeRight},
		{"center", [2]float32{400, 400}, DefaultEdgeZone, EdgeNone},
		{"top is not an edge", [2]float32{400, 0}, DefaultEdgeZone, EdgeNone},
		{"just outside default zone", [2]float32{3, 400}, DefaultEdgeZone, EdgeNone},
		{"inside widened zone", [2]float32{40, 400}, ResizingEdgeZone, EdgeLeft},
		{"past the window", [2]float32{-30, 400}, ResizingEdgeZone, EdgeLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyEdge(tt.cursor, window, tt.zone); got != tt.want {
				t.Errorf("ClassifyEdge(%v, %v) = %v, want %v", tt.cursor, tt.zone, got, tt.want)
			}
		})
	}
}

func TestClassifyEdgeNarrowWindow(t *testing.T) {
	// Both side zones overlap in a 60px window.
	got := ClassifyEdge([2]float32{30, 10}, [2]float32{60, 400}, ResizingEdgeZone)
	if got != EdgeNone {
		t.Errorf("ClassifyEdge() = %v, want none", got)
	}
	got = ClassifyEdge([2]float32{30, 390}, [2]float32{60, 400}, ResizingEdgeZone)
	if got != EdgeNone {
		t.Errorf("ClassifyEdge() with bottom = %v, want none", got)
	}
}

func TestEdgeCursorIcon(t *testing.T) {
	want := map[Edge]core.CursorIcon{
		EdgeNone:        core.CursorDefault,
		EdgeLeft:        core.CursorEWResize,
		EdgeRight:       core.CursorEWResize,
		EdgeBottom:      core.CursorNSResize,
		EdgeBottomLeft:  core.CursorNESWResize,
		EdgeBottomRight: core.CursorNWSEResize,
	}
	for edge, icon := range want {
		if got := edge.CursorIcon(); got != icon {
			t.Errorf("%v.CursorIcon() = %v, want %v", edge, got, icon)
		}
	}
}

func TestResizeFor(t *testing.T) {
	tests := []struct {
		name             string
		edge             Edge
		delta            [2]float32
		wantW, wantH, wX int
	}{
		{"right grows", EdgeRight, [2]float32{50, 0}, 850, 800, 100},
		{"right floors", EdgeRight, [2]float32{-760, 0}, MinWindowSize, 800, 100},
		{"right ignores vertical movement", EdgeRight, [2]float32{11, 355}, 811, 800, 100},
		{"left grows and shifts", EdgeLeft, [2]float32{-20, 0}, 820, 800, 80},
		{"left floors and anchors right edge", EdgeLeft, [2]float32{750, 0}, MinWindowSize, 800, 800},
		{"bottom grows", EdgeBottom, [2]float32{0, 100}, 800, 900, 100},
		{"bottom floors", EdgeBottom, [2]float32{0, -790}, 800, MinWindowSize, 100},
		{"bottom ignores horizontal movement", EdgeBottom, [2]float32{40, 5}, 800, 805, 100},
		{"bottom-left", EdgeBottomLeft, [2]float32{10, 20}, 790, 820, 110},
		{"bottom-right", EdgeBottomRight, [2]float32{10, -10}, 810, 790, 100},
		{"none keeps size", EdgeNone, [2]float32{10, 10}, 800, 800, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, x := resizeFor(tt.edge, tt.delta, 800, 800, 100)
			if w != tt.wantW || h != tt.wantH || x != tt.wX {
				t.Errorf("resizeFor() = (%d, %d, %d), want (%d, %d, %d)", w, h, x, tt.wantW, tt.wantH, tt.wX)
			}
		})
	}
}
