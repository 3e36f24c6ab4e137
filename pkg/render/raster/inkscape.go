package raster

import (
	"bytes"
	"context"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// inkscapeCandidates are the default Windows install locations, tried when
// inkscape is not on PATH.
var inkscapeCandidates = []string{
	`C:\Program Files\Inkscape\bin\inkscape.exe`,
	`C:\Program Files\Inkscape\inkscape.exe`,
	`C:\Program Files (x86)\Inkscape\bin\inkscape.exe`,
	`C:\Program Files (x86)\Inkscape\inkscape.exe`,
}

// FindInkscape returns the path of the inkscape executable, or "" if it
// cannot be found.
func FindInkscape() string {
	if exe, err := exec.LookPath("inkscape"); err == nil {
		return exe
	}
	for _, c := range inkscapeCandidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c
		}
	}
	return ""
}

// Inkscape rasterizes by exporting through the inkscape CLI. Inkscape reads
// and writes files, so every call works in its own temp directory.
type Inkscape struct {
	Path    string
	Timeout time.Duration
}

// NewInkscape locates inkscape.
func NewInkscape(timeout time.Duration) (*Inkscape, error) {
	exe := FindInkscape()
	if exe == "" {
		return nil, errors.Wrap(errors.ErrCodeRasterization, &errors.RasterError{Err: exec.ErrNotFound},
			"Inkscape not found. Please install Inkscape and ensure it's in PATH")
	}
	return &Inkscape{Path: exe, Timeout: timeout}, nil
}

func (r *Inkscape) Rasterize(ctx context.Context, svg []byte, w, h, dpi int) (image.Image, error) {
	dir, err := os.MkdirTemp("", "cardpress-inkscape-")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "card.svg")
	out := filepath.Join(dir, "card.png")
	if err := os.WriteFile(in, svg, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", in)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Path,
		"--export-type=png",
		"--export-filename="+out,
		"--export-width="+strconv.Itoa(w),
		"--export-height="+strconv.Itoa(h),
		"--export-dpi", strconv.Itoa(dpi),
		in,
	)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, failure(ctx, "inkscape", r.Timeout, errBuf.String(), err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, failure(ctx, "inkscape", r.Timeout, errBuf.String(), err)
	}
	img, err := decodeExact(data, w, h)
	if err != nil {
		return nil, failure(ctx, "inkscape", r.Timeout, errBuf.String(), err)
	}
	return img, nil
}
