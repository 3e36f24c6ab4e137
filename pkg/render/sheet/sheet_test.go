package sheet

import (
	"math"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/geom"
)

func TestPageSize(t *testing.T) {
	tests := []struct {
		format Format
		dpi    int
		w, h   int
	}{
		{A4Portrait, 300, 2480, 3508},
		{A4Landscape, 300, 3508, 2480},
		{A4Portrait, 150, 1240, 1754},
		{A4Portrait, 72, 595, 842},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			p, err := PageSize(tt.format, tt.dpi)
			if err != nil {
				t.Fatalf("PageSize() error: %v", err)
			}
			if p.Width != tt.w || p.Height != tt.h {
				t.Errorf("PageSize(%s, %d) = %dx%d, want %dx%d", tt.format, tt.dpi, p.Width, p.Height, tt.w, tt.h)
			}
		})
	}
}

func TestPageMillimetres(t *testing.T) {
	p, err := PageSize(A4Portrait, 300)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.WidthMM()-210) > 0.1 || math.Abs(p.HeightMM()-297) > 0.1 {
		t.Errorf("A4 = %.2fx%.2f mm, want 210x297", p.WidthMM(), p.HeightMM())
	}
	if got := p.DotsPerMM(); math.Abs(got-11.811) > 0.001 {
		t.Errorf("DotsPerMM() = %.4f, want 11.811", got)
	}
}

func TestPageSizeErrors(t *testing.T) {
	if _, err := PageSize("letter", 300); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("PageSize(letter) error = %v, want INVALID_FORMAT", err)
	}
	if _, err := PageSize(A4Portrait, 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("PageSize(dpi=0) error = %v, want INVALID_INPUT", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" A4Landscape "); err != nil || f != A4Landscape {
		t.Errorf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("a3portrait"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(a3portrait) error = %v", err)
	}
}

func TestGridCentering(t *testing.T) {
	s := DefaultSpec()
	g := NewGrid(s)

	x0, y0 := g.Origin().X, g.Origin().Y
	if diff := 2*x0 + 3*744 + 2*18 - s.Page.Width; diff < -1 || diff > 1 {
		t.Errorf("x0 = %d not centered on width %d (diff %d)", x0, s.Page.Width, diff)
	}
	if diff := 2*y0 + 3*1039 + 2*18 - s.Page.Height; diff < -1 || diff > 1 {
		t.Errorf("y0 = %d not centered on height %d (diff %d)", y0, s.Page.Height, diff)
	}
	if x0 != 106 || y0 != 177 {
		t.Errorf("origin = (%d, %d), want (106, 177)", x0, y0)
	}
}

func TestGridCenteringSpecWidth(t *testing.T) {
	s := DefaultSpec()
	s.Page.Width = 2481
	x0 := NewGrid(s).Block.X
	if diff := 2*x0 + 3*744 + 2*18 - 2481; diff < -1 || diff > 1 {
		t.Errorf("x0 = %d, 2*x0+2268 = %d, want 2481±1", x0, 2*x0+2268)
	}
}

func TestGridRowMajor(t *testing.T) {
	s := DefaultSpec()
	g := NewGrid(s)
	if len(g.Cells) != 9 {
		t.Fatalf("cells = %d, want 9", len(g.Cells))
	}
	for i, c := range g.Cells {
		if c.Index != i || c.Row != i/3 || c.Col != i%3 {
			t.Errorf("cell %d = row %d col %d index %d", i, c.Row, c.Col, c.Index)
		}
	}
	if g.Cells[1].X-g.Cells[0].X != 744+18 {
		t.Error("column step should be card width plus gutter")
	}
	if g.Cells[3].Y-g.Cells[0].Y != 1039+18 {
		t.Error("row step should be card height plus gutter")
	}
}

func TestGridOverflow(t *testing.T) {
	s := DefaultSpec()
	g := NewGrid(s)
	if g.Overflows() {
		t.Error("default grid should not overflow")
	}
	if !g.Fits() {
		t.Error("default grid should fit the 60px margin")
	}
	wide := s
	wide.Margin = 120
	if NewGrid(wide).Fits() {
		t.Error("grid 106px from the edge should not fit a 120px margin")
	}

	s.Cols = 4
	g = NewGrid(s)
	if !g.Overflows() {
		t.Error("4 columns of 744px cannot fit 2480px")
	}
	if g.Block.X >= 0 {
		t.Errorf("overflowing grid origin = %d, want negative", g.Block.X)
	}
	if got, want := g.Block.X, geom.FloorDiv(2480-(4*744+3*18), 2); got != want {
		t.Errorf("origin = %d, want floor-biased %d", got, want)
	}

	small := DefaultSpec()
	small.CardW, small.CardH = 600, 900
	if g := NewGrid(small); g.Overflows() || !g.Fits() {
		t.Error("small cards should fit with margin")
	}
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr bool
	}{
		{"default", func(*Spec) {}, false},
		{"zero cols", func(s *Spec) { s.Cols = 0 }, true},
		{"zero card", func(s *Spec) { s.CardH = 0 }, true},
		{"negative gutter", func(s *Spec) { s.Gutter = -1 }, true},
		{"no page", func(s *Spec) { s.Page = PageSpec{} }, true},
		{"overflow allowed", func(s *Spec) { s.Cols = 10 }, false},
		{"max cells", func(s *Spec) { s.Cols, s.Rows = 20, 20 }, false},
		{"too many cells", func(s *Spec) { s.Cols, s.Rows = 21, 20 }, true},
		{"huge cols", func(s *Spec) { s.Cols, s.Rows = 3000, 1 }, true},
		{"product wraps", func(s *Spec) { s.Cols, s.Rows = 1 << 32, 1 << 32 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSpec()
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPackScenario(t *testing.T) {
	var items []string
	for range 10 {
		items = append(items, "Sword_of_the_Autumn_Wolf")
	}
	for range 5 {
		items = append(items, "Potion_of_Brightmind")
	}

	pages := Pack(items, DefaultSpec())
	if len(pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(pages))
	}
	if len(pages[0].Placements) != 9 || len(pages[1].Placements) != 6 {
		t.Errorf("placements = %d + %d, want 9 + 6", len(pages[0].Placements), len(pages[1].Placements))
	}
	if pages[1].Number != 2 {
		t.Errorf("page number = %d, want 2", pages[1].Number)
	}
	if pages[0].Placements[8].Item != "Sword_of_the_Autumn_Wolf" || pages[1].Placements[0].Item != "Sword_of_the_Autumn_Wolf" {
		t.Error("input order not preserved across pages")
	}
	if pages[1].Placements[1].Item != "Potion_of_Brightmind" {
		t.Error("second page should continue with potions")
	}
	if pages[1].Placements[5].Cell.Index != 5 {
		t.Errorf("partial page cell = %d, want 5", pages[1].Placements[5].Cell.Index)
	}
	if len(pages[0].Marks) != 0 {
		t.Error("crop marks drawn while disabled")
	}
}

func TestPackEmpty(t *testing.T) {
	if pages := Pack([]int(nil), DefaultSpec()); len(pages) != 0 {
		t.Errorf("Pack(nil) = %d pages, want 0", len(pages))
	}
	s := DefaultSpec()
	s.Cols = 0
	if pages := Pack([]int{1, 2}, s); len(pages) != 0 {
		t.Errorf("Pack with empty grid = %d pages, want 0", len(pages))
	}
	// Negative dimensions multiply to a positive cell count.
	s.Cols, s.Rows = -1, -1
	if pages := Pack([]int{1}, s); len(pages) != 0 {
		t.Errorf("Pack with negative grid = %d pages, want 0", len(pages))
	}
	if n := PageCount(1, s); n != 0 {
		t.Errorf("PageCount with negative grid = %d, want 0", n)
	}
}

func TestPackCropMarks(t *testing.T) {
	s := DefaultSpec()
	s.CropMarks = true
	pages := Pack([]int{1, 2, 3, 4}, s)
	if got := len(pages[0].Marks); got != 4*8 {
		t.Errorf("marks = %d, want 32", got)
	}
}

func TestPackPageCounts(t *testing.T) {
	f := func(n uint16, cols, rows uint8) bool {
		s := DefaultSpec()
		s.Cols = int(cols%6) + 1
		s.Rows = int(rows%6) + 1
		items := make([]int, int(n%500))
		for i := range items {
			items[i] = i
		}

		pages := Pack(items, s)
		per := s.Cols * s.Rows
		want := (len(items) + per - 1) / per
		if len(pages) != want || PageCount(len(items), s) != want {
			return false
		}
		next := 0
		for pi, p := range pages {
			if pi < len(pages)-1 && len(p.Placements) != per {
				return false
			}
			if len(p.Placements) == 0 || len(p.Placements) > per {
				return false
			}
			for ci, pl := range p.Placements {
				if pl.Item != next || pl.Cell.Index != ci {
					return false
				}
				next++
			}
		}
		return next == len(items)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 300, Rand: rand.New(rand.NewSource(3))}); err != nil {
		t.Error(err)
	}
}

func TestCropMarks(t *testing.T) {
	card := geom.R(100, 200, 744, 1039)
	marks := CropMarks(card, 8, 28)
	if len(marks) != 8 {
		t.Fatalf("marks = %d, want 8", len(marks))
	}

	want0 := geom.Seg(64, 192, 92, 192)
	if marks[0] != want0 {
		t.Errorf("first mark = %+v, want %+v", marks[0], want0)
	}

	for i, m := range marks {
		dx, dy := m.To.X-m.From.X, m.To.Y-m.From.Y
		if (dx != 0 && dy != 0) || max(abs(dx), abs(dy)) != 28 {
			t.Errorf("mark %d is not an axis-aligned 28px segment: %+v", i, m)
		}
		for _, p := range []geom.Point{m.From, m.To} {
			if p.X > card.X-8 && p.X < card.Right()+8 && p.Y > card.Y-8 && p.Y < card.Bottom()+8 {
				t.Errorf("mark %d endpoint %+v inside the offset box", i, p)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
