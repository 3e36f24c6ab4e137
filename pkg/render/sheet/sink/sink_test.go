package sink

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardpress/pkg/errors"
)

func pages(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = imaging.New(120, 170, color.White)
	}
	return out
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, pages(2), 72); err != nil {
		t.Fatalf("WritePDF() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestWritePDFErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil, 300); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("WritePDF(nil) error = %v, want EMPTY_INPUT", err)
	}
	if err := WritePDF(&buf, pages(1), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("WritePDF(dpi=0) error = %v, want INVALID_INPUT", err)
	}
}

func TestWritePDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sheet.pdf")
	if err := WritePDFFile(path, pages(1), 72); err != nil {
		t.Fatalf("WritePDFFile() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("pdf not written: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePDFFile(missing, nil, 72); err == nil {
		t.Error("WritePDFFile(nil) should fail")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("failed write left a file behind")
	}
}

func TestPNGNames(t *testing.T) {
	got := PNGNames("sheets/cards.png", 3)
	want := []string{"sheets/cards-01.png", "sheets/cards-02.png", "sheets/cards-03.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PNGNames = %v, want %v", got, want)
	}
}

func TestWritePNGs(t *testing.T) {
	base := filepath.Join(t.TempDir(), "cards")
	names, err := WritePNGs(base, pages(2))
	if err != nil {
		t.Fatalf("WritePNGs() error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v", names)
	}
	img, err := imaging.Open(names[1])
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 170 {
		t.Errorf("page size = %v", b)
	}
}
