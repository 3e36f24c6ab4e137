// Package geom provides the integer rectangle and segment types shared by
// the card layout engine and the sheet packer.
//
// All coordinates are in canvas units: design units for card layouts, pixels
// at the target resolution for print sheets. The Y axis grows downward, as in
// SVG and image.Image.
package geom

import "image"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// R is shorthand for constructing a Rect.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterX returns the horizontal center, rounded down.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps reports whether r and o share any interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d int) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Image converts the rectangle to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// Point is an integer coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

// Seg is shorthand for constructing a Segment.
func Seg(x1, y1, x2, y2 int) Segment {
	return Segment{From: Point{x1, y1}, To: Point{x2, y2}}
}

// FloorDiv divides a by b rounding toward negative infinity.
// Go's / truncates toward zero, which differs for negative numerators.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
