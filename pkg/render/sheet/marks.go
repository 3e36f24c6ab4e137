package sheet

import "github.com/matzehuels/cardpress/pkg/geom"

// Crop mark geometry in pixels.
const (
	DefaultMarkOffset = 8
	DefaultMarkLength = 28
)

// CropMarks returns the eight segments bracketing the corners of r. Every
// segment starts offset pixels outside r and extends length pixels away from
// it, so no mark touches the card.
func CropMarks(r geom.Rect, offset, length int) []geom.Segment {
	left := r.X - offset
	top := r.Y - offset
	right := r.Right() + offset
	bottom := r.Bottom() + offset

	return []geom.Segment{
		geom.Seg(left-length, top, left, top),
		geom.Seg(left, top-length, left, top),
		geom.Seg(right, top, right+length, top),
		geom.Seg(right, top-length, right, top),
		geom.Seg(left-length, bottom, left, bottom),
		geom.Seg(left, bottom, left, bottom+length),
		geom.Seg(right, bottom, right+length, bottom),
		geom.Seg(right, bottom, right, bottom+length),
	}
}
