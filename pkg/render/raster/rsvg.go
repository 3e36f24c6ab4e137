package raster

import (
	"bytes"
	"context"
	"image"
	"os/exec"
	"strconv"
	"time"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// RSVG rasterizes with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVG struct {
	Path    string
	Timeout time.Duration
}

// NewRSVG looks up rsvg-convert on PATH.
func NewRSVG(timeout time.Duration) (*RSVG, error) {
	path, err := exec.LookPath("rsvg-convert")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, &errors.RasterError{Err: err},
			"png export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}
	return &RSVG{Path: path, Timeout: timeout}, nil
}

func (r *RSVG) Rasterize(ctx context.Context, svg []byte, w, h, dpi int) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	d := strconv.Itoa(dpi)
	cmd := exec.CommandContext(ctx, r.Path,
		"-f", "png",
		"-w", strconv.Itoa(w),
		"-h", strconv.Itoa(h),
		"-d", d, "-p", d,
	)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, failure(ctx, "rsvg-convert", r.Timeout, errBuf.String(), err)
	}
	img, err := decodeExact(out.Bytes(), w, h)
	if err != nil {
		return nil, failure(ctx, "rsvg-convert", r.Timeout, errBuf.String(), err)
	}
	return img, nil
}
