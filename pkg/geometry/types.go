// Package geometry provides basic geometric types used throughout the application.
package geometry

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectInt represents an axis-aligned rectangle with integer pixel coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate one past the right edge.
func (r RectInt) Right() int {
	return r.X + r.Width
}

// Bottom returns the y coordinate one past the bottom edge.
func (r RectInt) Bottom() int {
	return r.Y + r.Height
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this rectangle overlaps another.
func (r RectInt) Intersects(other RectInt) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// OverlapsVertically returns true if the two rectangles share any rows.
// Edges that merely touch still count, which is what glyph-fragment
// grouping needs (the dot of an "i" sits right above the stem).
func (r RectInt) OverlapsVertically(other RectInt) bool {
	return !(r.Y+r.Height < other.Y || other.Y+other.Height < r.Y)
}

// HorizontalGap returns the horizontal distance in pixels between two
// rectangles, or 0 if they overlap horizontally.
func (r RectInt) HorizontalGap(other RectInt) int {
	if r.X+r.Width >= other.X && other.X+other.Width >= r.X {
		return 0
	}
	gap := other.X - (r.X + r.Width)
	if g := r.X - (other.X + other.Width); g > gap {
		gap = g
	}
	return gap
}

// Union returns the smallest rectangle containing both rectangles.
func (r RectInt) Union(other RectInt) RectInt {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return RectInt{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// ClampTo clamps the rectangle to an image of the given dimensions.
// The origin is clamped into [0, dim-1] and the size shrunk so the
// rectangle fits; a rectangle entirely outside comes back Empty.
func (r RectInt) ClampTo(width, height int) RectInt {
	c := r
	if c.X < 0 {
		c.Width += c.X
		c.X = 0
	}
	if c.Y < 0 {
		c.Height += c.Y
		c.Y = 0
	}
	if c.X > width-1 {
		c.X = width - 1
		c.Width = 0
	}
	if c.Y > height-1 {
		c.Y = height - 1
		c.Height = 0
	}
	if c.X+c.Width > width {
		c.Width = width - c.X
	}
	if c.Y+c.Height > height {
		c.Height = height - c.Y
	}
	if c.Width < 0 {
		c.Width = 0
	}
	if c.Height < 0 {
		c.Height = 0
	}
	return c
}
