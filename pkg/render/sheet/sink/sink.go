// Package sink writes composed sheet pages as a PDF or as PNG files.
package sink

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/render/sheet"
)

// WritePDF writes pages as one PDF, one page per image in order. Each PDF
// page has the physical size of its image at dpi.
func WritePDF(w io.Writer, pages []image.Image, dpi int) error {
	if len(pages) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no pages to write")
	}
	if dpi <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %d", dpi)
	}
	size := func(img image.Image) (float64, float64) {
		b := img.Bounds()
		p := sheet.PageSpec{Width: b.Dx(), Height: b.Dy(), DPI: dpi}
		return p.WidthMM(), p.HeightMM()
	}
	dpmm := sheet.PageSpec{DPI: dpi}.DotsPerMM()

	wMM, hMM := size(pages[0])
	writer := pdf.New(w, wMM, hMM, nil)
	for i, img := range pages {
		if i > 0 {
			wMM, hMM = size(img)
			writer.NewPage(wMM, hMM)
		}
		c := canvas.New(wMM, hMM)
		ctx := canvas.NewContext(c)
		ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return nil
}

// WritePDFFile writes the PDF to path, creating parent directories. The file
// is only created once all pages are available.
func WritePDFFile(path string, pages []image.Image, dpi int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, pages, dpi); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// PNGNames returns the file names WritePNGs uses for n pages: base without
// its extension plus "-NN.png".
func PNGNames(base string, n int) []string {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s-%02d.png", stem, i+1)
	}
	return names
}

// WritePNGs writes one PNG per page and returns the paths written.
func WritePNGs(base string, pages []image.Image) ([]string, error) {
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no pages to write")
	}
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return nil, err
	}
	names := PNGNames(base, len(pages))
	for i, img := range pages {
		if err := writePNG(names[i], img); err != nil {
			return names[:i], err
		}
	}
	return names, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
