package compose

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

func smallSpec(crop bool) sheet.Spec {
	return sheet.Spec{
		Page:      sheet.PageSpec{Format: sheet.A4Portrait, Width: 200, Height: 300, DPI: 24},
		Cols:      2,
		Rows:      2,
		Gutter:    10,
		CardW:     60,
		CardH:     90,
		CropMarks: crop,
	}
}

func solid(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestPage(t *testing.T) {
	s := smallSpec(false)
	red := color.NRGBA{R: 255, A: 255}
	pages := sheet.Pack([]image.Image{solid(60, 90, red), solid(60, 90, red), solid(60, 90, red)}, s)

	img := Page(s.Page, pages[0])
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 300 {
		t.Fatalf("page size = %v", b)
	}

	first := pages[0].Placements[0].Cell
	r, _, _, _ := img.At(first.X+5, first.Y+5).RGBA()
	if r != 0xffff {
		t.Errorf("card pixel not pasted at cell origin")
	}
	if !isWhite(img.At(0, 0)) {
		t.Error("page background should be white")
	}

	empty := sheet.NewGrid(s).Cells[3]
	if !isWhite(img.At(empty.X+5, empty.Y+5)) {
		t.Error("unused cell should stay blank")
	}
}

func TestPageCropMarks(t *testing.T) {
	s := smallSpec(true)
	pages := sheet.Pack([]image.Image{solid(60, 90, color.White)}, s)
	img := Page(s.Page, pages[0])

	m := pages[0].Marks[0]
	mid := image.Pt((m.From.X+m.To.X)/2, m.From.Y)
	if isWhite(img.At(mid.X, mid.Y)) {
		t.Errorf("crop mark not drawn at %v", mid)
	}
}

func TestPages(t *testing.T) {
	s := smallSpec(false)
	var items []image.Image
	for range 9 {
		items = append(items, solid(60, 90, color.Black))
	}
	packed := sheet.Pack(items, s)

	out, err := Pages(context.Background(), s.Page, packed, 2)
	if err != nil {
		t.Fatalf("Pages() error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("pages = %d, want 3", len(out))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Pages(ctx, s.Page, packed, 1); err == nil {
		t.Error("Pages() with cancelled context should fail")
	}
}
