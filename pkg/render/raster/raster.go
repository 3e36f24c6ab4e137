// Package raster turns card SVGs into images through an external tool.
//
// Two backends are supported: rsvg-convert (librsvg), which reads the SVG
// from stdin and writes PNG to stdout, and Inkscape, which needs real files
// on disk. Both are wrapped so that every result has exactly the requested
// pixel size.
//
//	r, err := raster.New(raster.BackendRSVG, 60*time.Second)
//	img, err := r.Rasterize(ctx, svg, 744, 1039, 300)
package raster

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// Rasterizer renders SVG bytes to an image of exactly w×h pixels.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, w, h, dpi int) (image.Image, error)
}

// Backend names an external rasterization tool.
type Backend string

const (
	BackendRSVG     Backend = "rsvg"
	BackendInkscape Backend = "inkscape"
)

// DefaultTimeout bounds a single rasterizer run.
const DefaultTimeout = 60 * time.Second

// Backends returns the supported backend names.
func Backends() []Backend { return []Backend{BackendRSVG, BackendInkscape} }

// New locates the tool for backend and returns a rasterizer for it. A
// timeout of zero uses DefaultTimeout.
func New(backend Backend, timeout time.Duration) (Rasterizer, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	switch backend {
	case BackendRSVG, "":
		return NewRSVG(timeout)
	case BackendInkscape:
		return NewInkscape(timeout)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown raster backend %q (must be one of: rsvg, inkscape)", backend)
	}
}

// decodeExact decodes PNG output and resizes it when the tool did not honour
// the requested size.
func decodeExact(data []byte, w, h int) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return fit(img, w, h), nil
}

func fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// failure wraps a tool failure with its stderr.
func failure(ctx context.Context, tool string, timeout time.Duration, stderr string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeRasterization,
			&errors.RasterError{Diagnostic: stderr, Err: errors.New(errors.ErrCodeTimeout, "timed out after %s", timeout)},
			"%s", tool)
	}
	return errors.Wrap(errors.ErrCodeRasterization, &errors.RasterError{Diagnostic: stderr, Err: err}, "%s", tool)
}
