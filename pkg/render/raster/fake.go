package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// Fake is an in-memory rasterizer that returns solid images of the requested
// size. It needs no external tool and is used by tests and dry runs.
type Fake struct {
	// Color fills every image. Nil means white.
	Color color.Color
	// FailOn makes Rasterize fail for any SVG containing this marker.
	FailOn []byte

	calls atomic.Int64
}

func (f *Fake) Rasterize(ctx context.Context, svg []byte, w, h, dpi int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.calls.Add(1)
	if len(f.FailOn) > 0 && bytes.Contains(svg, f.FailOn) {
		return nil, errors.Wrap(errors.ErrCodeRasterization,
			&errors.RasterError{Diagnostic: "fake: refusing marked svg"}, "fake")
	}
	c := f.Color
	if c == nil {
		c = color.White
	}
	return imaging.New(w, h, c), nil
}

// Calls returns how many times Rasterize has run.
func (f *Fake) Calls() int { return int(f.calls.Load()) }
