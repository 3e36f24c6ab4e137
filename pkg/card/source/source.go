// Package source loads card definitions.
//
// Definitions are documents of the form {"cards": [...]} stored as JSON or
// YAML files, or card documents in a MongoDB collection. All sources return
// cards in a stable order: files sorted by name, cards in file order.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
)

// Source yields card definitions.
type Source interface {
	Load(ctx context.Context) ([]card.Card, error)
}

// Format is a definition file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf maps a file name to its encoding by extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Read decodes one definition document from r. A document without a
// "cards" key yields no cards.
func Read(r io.Reader, format Format) ([]card.Card, error) {
	var f card.File
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition format %q", format)
	}
	return f.Cards, nil
}

// ReadFile decodes the definition file at path.
func ReadFile(path string) ([]card.Card, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: expected .json, .yaml or .yml", path)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	cards, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", path)
	}
	return cards, nil
}

// Dir loads definitions from a single file or from every definition file
// directly inside a directory.
//
// In directory mode a file that fails to decode is logged and skipped, so
// one broken file does not hide the rest of a collection. A single file that
// fails to decode is an error.
type Dir struct {
	Path   string
	Logger *log.Logger
}

func (d Dir) Load(ctx context.Context) ([]card.Card, error) {
	st, err := os.Stat(d.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "card definitions %s", d.Path)
	}
	if !st.IsDir() {
		return ReadFile(d.Path)
	}

	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	files, err := Files(d.Path)
	if err != nil {
		return nil, err
	}

	var cards []card.Card
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loaded, err := ReadFile(path)
		if err != nil {
			logger.Warn("skipping definition file", "file", filepath.Base(path), "err", err)
			continue
		}
		logger.Info("loaded cards", "file", filepath.Base(path), "cards", len(loaded))
		cards = append(cards, loaded...)
	}
	return cards, nil
}

// Files lists the definition files directly inside dir, sorted by name.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatOf(e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
