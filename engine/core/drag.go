package core

// WindowDrag moves an undecorated window by hand. The grab point is the
// cursor position inside the window when the drag began; every later cursor
// move shifts the window so that point stays under the cursor.
type WindowDrag struct {
	active bool
	grab   [2]float64
}

// Begin starts a drag grabbed at the window-relative cursor position.
func (d *WindowDrag) Begin(cursorX, cursorY float64) {
	d.active = true
	d.grab = [2]float64{cursorX, cursorY}
}

func (d *WindowDrag) Active() bool { return d.active }

func (d *WindowDrag) End() { d.active = false }

// Move returns the outer position for a window at outerX,outerY whose
// cursor is now at cursorX,cursorY. ok is false when no drag is active or
// the window would not move.
func (d *WindowDrag) Move(outerX, outerY int, cursorX, cursorY float64) (x, y int, ok bool) {
	if !d.active {
		return outerX, outerY, false
	}
	dx := int(cursorX - d.grab[0])
	dy := int(cursorY - d.grab[1])
	if dx == 0 && dy == 0 {
		return outerX, outerY, false
	}
	return outerX + dx, outerY + dy, true
}
