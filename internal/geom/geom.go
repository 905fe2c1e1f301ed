// Package geom provides screen-space geometry for the block overlay:
// rectangles, zoom scaling, forbidden zones, and page clipping.
package geom

// Point represents a screen coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect represents an axis-aligned screen rectangle.
type Rect struct {
	// Left is the X coordinate of the left edge.
	Left float64

	// Top is the Y coordinate of the top edge.
	Top float64

	// Width is the horizontal extent.
	Width float64

	// Height is the vertical extent.
	Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// CenterY returns the Y coordinate of the vertical center.
func (r Rect) CenterY() float64 {
	return r.Top + r.Height/2
}

// IsEmpty returns true if the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point lies inside the rect.
// The left and top edges are inclusive, right and bottom exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() &&
		p.Y >= r.Top && p.Y < r.Bottom()
}

// ContainsY returns true if the vertical coordinate lies inside the rect.
func (r Rect) ContainsY(y float64) bool {
	return y >= r.Top && y < r.Bottom()
}

// Scale returns the rect with every coordinate multiplied by factor.
// Used to convert layout-space geometry to display space at the
// current zoom level.
func (r Rect) Scale(factor float64) Rect {
	if factor == 1 || factor == 0 {
		if factor == 0 {
			return Rect{}
		}
		return r
	}
	return Rect{
		Left:   r.Left * factor,
		Top:    r.Top * factor,
		Width:  r.Width * factor,
		Height: r.Height * factor,
	}
}
