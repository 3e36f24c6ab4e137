package sheet

import "github.com/matzehuels/cardpress/pkg/geom"

// Placement puts one card handle into a cell.
type Placement[H any] struct {
	Item H
	Cell Cell
}

// Page is one packed page. Number starts at 1.
type Page[H any] struct {
	Number     int
	Placements []Placement[H]
	Marks      []geom.Segment
}

// Pack splits items into pages of s.PerPage() and assigns them to cells in
// row-major order. The last page may be partial. No items gives no pages; a
// spec with an empty grid also gives no pages. When s.CropMarks is set each
// placement gets its eight crop mark segments.
func Pack[H any](items []H, s Spec) []Page[H] {
	if len(items) == 0 || s.Cols < 1 || s.Rows < 1 {
		return nil
	}
	per := s.PerPage()
	g := NewGrid(s)

	pages := make([]Page[H], 0, (len(items)+per-1)/per)
	for start := 0; start < len(items); start += per {
		chunk := items[start:min(start+per, len(items))]
		p := Page[H]{Number: len(pages) + 1, Placements: make([]Placement[H], 0, len(chunk))}
		for i, item := range chunk {
			cell := g.Cells[i]
			p.Placements = append(p.Placements, Placement[H]{Item: item, Cell: cell})
			if s.CropMarks {
				p.Marks = append(p.Marks, CropMarks(cell.Rect(), DefaultMarkOffset, DefaultMarkLength)...)
			}
		}
		pages = append(pages, p)
	}
	return pages
}

// PageCount returns the number of pages Pack produces for n items.
func PageCount(n int, s Spec) int {
	if n <= 0 || s.Cols < 1 || s.Rows < 1 {
		return 0
	}
	per := s.PerPage()
	return (n + per - 1) / per
}
