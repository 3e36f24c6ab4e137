package art

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cardpress/pkg/errors"
)

func TestFilesResolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wolf.jpg"), []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		files   Files
		ref     string
		prefix  string
		wantErr bool
	}{
		{"relative to root", Files{Root: dir}, "wolf.jpg", "data:image/jpeg;base64,", false},
		{"absolute", Files{}, filepath.Join(dir, "wolf.jpg"), "data:image/jpeg;base64,", false},
		{"missing", Files{Root: dir}, "nope.png", "", true},
		{"empty ref", Files{Root: dir}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := tt.files.Resolve(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeArtNotFound) {
					t.Errorf("code = %v, want ART_NOT_FOUND", errors.GetCode(err))
				}
				return
			}
			if !strings.HasPrefix(uri, tt.prefix) {
				t.Errorf("uri = %q, want prefix %q", uri, tt.prefix)
			}
		})
	}
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"a.PNG":  "image/png",
		"a.jpeg": "image/jpeg",
		"a.JPG":  "image/jpeg",
		"a.svg":  "image/svg+xml",
		"a":      "image/png",
	}
	for in, want := range tests {
		if got := MimeType(in); got != want {
			t.Errorf("MimeType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDataURI(t *testing.T) {
	if got := DataURI([]byte("hi"), "image/png"); got != "data:image/png;base64,aGk=" {
		t.Errorf("DataURI = %q", got)
	}
}

func TestMemo(t *testing.T) {
	calls := 0
	m := Memo(ResolverFunc(func(ref string) (string, error) {
		calls++
		if ref == "bad" {
			return "", errors.New(errors.ErrCodeArtNotFound, "bad")
		}
		return "uri:" + ref, nil
	}))

	for range 3 {
		if uri, err := m.Resolve("a"); err != nil || uri != "uri:a" {
			t.Fatalf("Resolve(a) = %q, %v", uri, err)
		}
	}
	if calls != 1 {
		t.Errorf("underlying resolver called %d times, want 1", calls)
	}
	m.Resolve("bad")
	m.Resolve("bad")
	if calls != 3 {
		t.Errorf("errors should not be memoised, calls = %d", calls)
	}
}

func TestCachedRereadsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wolf.png")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewCached(Files{Root: dir}, 4)

	first, err := c.Resolve("wolf.png")
	if err != nil {
		t.Fatal(err)
	}
	if again, _ := c.Resolve("wolf.png"); again != first {
		t.Error("unchanged file should be served from cache")
	}

	if err := os.WriteFile(path, []byte("second version"), 0o644); err != nil {
		t.Fatal(err)
	}
	changed, err := c.Resolve("wolf.png")
	if err != nil {
		t.Fatal(err)
	}
	if changed == first || changed != DataURI([]byte("second version"), "image/png") {
		t.Errorf("changed file not re-read: %q", changed)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve("wolf.png"); !errors.Is(err, errors.ErrCodeArtNotFound) {
		t.Errorf("removed file error = %v, want ART_NOT_FOUND", err)
	}
}

func TestCachedLimit(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.png", "b.png", "c.png"}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c := NewCached(Files{Root: dir}, 2)
	for _, n := range names {
		if _, err := c.Resolve(n); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.entries[filepath.Join(dir, "a.png")]; ok {
		t.Error("least recently used entry should be evicted")
	}
}
