package layout

import "github.com/matzehuels/cardpress/pkg/geom"

// Region names beyond the theme bands.
const (
	RegionFrame = "frame"
)

// Document is the draw-instruction output for one card.
type Document struct {
	Width, Height int
	Clips         []Clip
	Regions       []Region
	Warnings      []error
}

// Region returns the first region with the given name.
func (d Document) Region(name string) (Region, bool) {
	for _, r := range d.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Clip is a rounded-rect clip path referenced by images.
type Clip struct {
	ID     string
	Rect   geom.Rect
	Radius int
}

// Region is one named area of the card and everything drawn inside it.
// Shapes are drawn first, then the image, then Overlay, then texts.
type Region struct {
	Name    string
	Rect    geom.Rect
	Shapes  []Shape
	Image   *Image
	Overlay []Shape
	Texts   []Text
}

// Shape is a rounded rectangle. An empty Fill draws the border only.
type Shape struct {
	Rect        geom.Rect
	Radius      int
	Fill        string
	Stroke      string
	StrokeWidth int
}

// Image is an embedded raster clipped to a clip path, scaled to cover its
// rectangle and centered.
type Image struct {
	Href   string
	Rect   geom.Rect
	ClipID string
}

// Text is one or more lines of text. Line i has its baseline at
// Y + i*LineHeight.
type Text struct {
	X, Y       int
	Size       int
	LineHeight int
	Family     string
	Weight     string // "", "600", "700"
	Style      string // "", "italic"
	Anchor     string // "", "middle", "end"
	Fill       string
	Lines      []string
}

// Baselines returns the baseline y of every line.
func (t Text) Baselines() []int {
	out := make([]int, len(t.Lines))
	for i := range t.Lines {
		out[i] = t.Y + i*t.LineHeight
	}
	return out
}
