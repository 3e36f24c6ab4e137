package sheet

import (
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/geom"
)

// Print defaults.
const (
	DefaultCols   = 3
	DefaultRows   = 3
	DefaultMargin = 60
	DefaultGutter = 18
	DefaultCardW  = 744
	DefaultCardH  = 1039

	// MaxCells bounds Cols*Rows; every cell is allocated per page.
	MaxCells = 400
)

// Spec holds everything the packer needs. Lengths are pixels at Page.DPI.
type Spec struct {
	Page      PageSpec `json:"page"`
	Cols      int      `json:"cols"`
	Rows      int      `json:"rows"`
	Margin    int      `json:"margin"`
	Gutter    int      `json:"gutter"`
	CardW     int      `json:"card_w"`
	CardH     int      `json:"card_h"`
	CropMarks bool     `json:"crop_marks"`
}

// DefaultSpec returns the 3×3 A4 portrait layout at 300 dpi.
func DefaultSpec() Spec {
	page, _ := PageSize(A4Portrait, DefaultDPI)
	return Spec{
		Page:   page,
		Cols:   DefaultCols,
		Rows:   DefaultRows,
		Margin: DefaultMargin,
		Gutter: DefaultGutter,
		CardW:  DefaultCardW,
		CardH:  DefaultCardH,
	}
}

// PerPage is the number of cells on one page.
func (s Spec) PerPage() int { return s.Cols * s.Rows }

// Validate checks the parameters that would make the grid meaningless.
// It does not check that the grid fits the page.
func (s Spec) Validate() error {
	switch {
	case s.Page.Width <= 0 || s.Page.Height <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "page size must be positive")
	case s.Cols < 1 || s.Rows < 1:
		return errors.New(errors.ErrCodeInvalidInput, "grid must have at least one column and row, got %dx%d", s.Cols, s.Rows)
	case s.Cols > MaxCells || s.Rows > MaxCells || s.Cols*s.Rows > MaxCells:
		return errors.New(errors.ErrCodeInvalidInput, "grid %dx%d exceeds %d cells", s.Cols, s.Rows, MaxCells)
	case s.CardW < 1 || s.CardH < 1:
		return errors.New(errors.ErrCodeInvalidInput, "card size must be positive, got %dx%d", s.CardW, s.CardH)
	case s.Gutter < 0 || s.Margin < 0:
		return errors.New(errors.ErrCodeInvalidInput, "margin and gutter must not be negative")
	}
	return nil
}

// Cell is one card slot on a page.
type Cell struct {
	Index int `json:"index"`
	Row   int `json:"row"`
	Col   int `json:"col"`
	X     int `json:"x"`
	Y     int `json:"y"`
	W     int `json:"w"`
	H     int `json:"h"`
}

// Rect returns the cell rectangle.
func (c Cell) Rect() geom.Rect { return geom.R(c.X, c.Y, c.W, c.H) }

// Grid is the centered cell layout of one page.
type Grid struct {
	Page   PageSpec
	Block  geom.Rect // Bounding box of all cells
	Margin int
	Cells  []Cell
}

// NewGrid computes the cell layout for s. Cells are in row-major order.
func NewGrid(s Spec) Grid {
	totalW := s.Cols*s.CardW + max(s.Cols-1, 0)*s.Gutter
	totalH := s.Rows*s.CardH + max(s.Rows-1, 0)*s.Gutter
	x0 := geom.FloorDiv(s.Page.Width-totalW, 2)
	y0 := geom.FloorDiv(s.Page.Height-totalH, 2)

	g := Grid{
		Page:   s.Page,
		Block:  geom.R(x0, y0, totalW, totalH),
		Margin: s.Margin,
	}
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			g.Cells = append(g.Cells, Cell{
				Index: len(g.Cells),
				Row:   r, Col: c,
				X: x0 + c*(s.CardW+s.Gutter),
				Y: y0 + r*(s.CardH+s.Gutter),
				W: s.CardW, H: s.CardH,
			})
		}
	}
	return g
}

// Origin returns the top-left corner of the block.
func (g Grid) Origin() geom.Point { return geom.Point{X: g.Block.X, Y: g.Block.Y} }

// Overflows reports whether any cell extends beyond the page.
func (g Grid) Overflows() bool {
	return !geom.R(0, 0, g.Page.Width, g.Page.Height).Contains(g.Block)
}

// Fits reports whether the block stays inside the page inset by the margin.
func (g Grid) Fits() bool {
	return geom.R(0, 0, g.Page.Width, g.Page.Height).Inset(g.Margin).Contains(g.Block)
}
