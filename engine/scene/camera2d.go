// Package scene holds the camera that maps window pixels to clip space.
package scene

// OrthoCamera2D is an orthographic camera over a window in pixels with the
// origin at the top-left corner and Y growing downward.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	X, Y                     float32
	vp                       [16]float32
	dirty                    bool
}

func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

// SetViewportPixels maps [0,w] x [0,h] onto the full clip rectangle.
func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.Left, c.Right = 0, float32(w)
	c.Top, c.Bottom = 0, float32(h)
	c.dirty = true
}

// Move pans the view by dx, dy pixels.
func (c *OrthoCamera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }

// VP returns the column-major view-projection matrix.
func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	proj := ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	view := translate(-c.X, -c.Y, 0)
	c.vp = mul(proj, view)
	c.dirty = false
}

// Project maps a window-pixel point to normalized device coordinates.
func (c *OrthoCamera2D) Project(x, y float32) (float32, float32) {
	m := c.VP()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// mul returns a*b.
func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[row+4*k] * b[k+4*col]
			}
			out[row+4*col] = sum
		}
	}
	return out
}
