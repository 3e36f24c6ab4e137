package sheet

import (
	"math"
	"strings"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// Format identifies a supported page format and orientation.
type Format string

const (
	A4Portrait  Format = "a4portrait"
	A4Landscape Format = "a4landscape"
)

// A4 in inches.
const (
	a4ShortIn = 8.267716535
	a4LongIn  = 11.692913386
)

// DefaultDPI is the print resolution used when none is given.
const DefaultDPI = 300

// Formats lists the supported formats.
func Formats() []Format { return []Format{A4Portrait, A4Landscape} }

// ParseFormat parses a format identifier, ignoring case and surrounding space.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case A4Portrait, A4Landscape:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported page format %q (want a4portrait or a4landscape)", s)
}

// PageSpec is the pixel size of a page at a resolution.
type PageSpec struct {
	Format Format `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	DPI    int    `json:"dpi"`
}

// PageSize returns the page dimensions for format at dpi. Each side is the
// physical size in inches times dpi, rounded to the nearest pixel.
func PageSize(format Format, dpi int) (PageSpec, error) {
	if dpi <= 0 {
		return PageSpec{}, errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %d", dpi)
	}
	var w, h float64
	switch format {
	case A4Portrait:
		w, h = a4ShortIn, a4LongIn
	case A4Landscape:
		w, h = a4LongIn, a4ShortIn
	default:
		return PageSpec{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported page format %q", format)
	}
	return PageSpec{
		Format: format,
		Width:  int(math.Round(w * float64(dpi))),
		Height: int(math.Round(h * float64(dpi))),
		DPI:    dpi,
	}, nil
}

const mmPerInch = 25.4

// DotsPerMM is the pixel density of the page.
func (p PageSpec) DotsPerMM() float64 { return float64(p.DPI) / mmPerInch }

// WidthMM and HeightMM return the physical page size in millimetres.
func (p PageSpec) WidthMM() float64  { return float64(p.Width) / p.DotsPerMM() }
func (p PageSpec) HeightMM() float64 { return float64(p.Height) / p.DotsPerMM() }
