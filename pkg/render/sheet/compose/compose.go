// Package compose paints packed sheet pages into pixel images.
//
// Each page starts as a white canvas of the page size. Card images are
// pasted at their cell origins with imaging, and crop marks are stroked as
// 1px black lines with gg. Pages are independent, so [Pages] renders them
// concurrently.
package compose

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cardpress/pkg/geom"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

// Page paints one page. Cards that fall partly outside the page are clipped.
func Page(page sheet.PageSpec, p sheet.Page[image.Image]) image.Image {
	canvas := imaging.New(page.Width, page.Height, color.White)
	for _, pl := range p.Placements {
		if pl.Item == nil {
			continue
		}
		canvas = imaging.Paste(canvas, pl.Item, image.Pt(pl.Cell.X, pl.Cell.Y))
	}
	if len(p.Marks) == 0 {
		return canvas
	}
	return drawMarks(canvas, p.Marks)
}

func drawMarks(img image.Image, marks []geom.Segment) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.SetLineCapButt()
	for _, m := range marks {
		x1, y1, x2, y2 := float64(m.From.X), float64(m.From.Y), float64(m.To.X), float64(m.To.Y)
		// Center the 1px stroke on the pixel row or column.
		if m.From.Y == m.To.Y {
			y1 += 0.5
			y2 += 0.5
		} else {
			x1 += 0.5
			x2 += 0.5
		}
		dc.DrawLine(x1, y1, x2, y2)
	}
	dc.Stroke()
	return dc.Image()
}

// Pages paints all pages using up to workers goroutines (NumCPU when
// workers < 1). The result has the same order as pages. Cancelling ctx
// stops pages that have not started yet.
func Pages(ctx context.Context, page sheet.PageSpec, pages []sheet.Page[image.Image], workers int) ([]image.Image, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	out := make([]image.Image, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Page(page, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
