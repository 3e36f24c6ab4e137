package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/render/card/layout"
	"github.com/matzehuels/cardpress/pkg/render/card/sink"
)

// Generate lays out every card and writes <slug>.svg (and <slug>.json when
// requested) into opts.OutDir.
//
// Cards are laid out in parallel and written in input order, so when two
// cards share a slug the later one's file is kept. A card whose theme does
// not resolve is skipped and logged; after all other cards are written
// Generate returns the result together with an INVALID_THEME summary error.
func (r *Runner) Generate(ctx context.Context, cards []card.Card, opts GenerateOptions) (*GenerateResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	docs := make([]layout.Document, len(cards))
	errs := make([]error, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, c := range cards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i], errs[i] = r.Layout(gctx, c, opts.Theme)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", opts.OutDir)
	}

	res := &GenerateResult{}
	for i, c := range cards {
		name := c.WithDefaults().Name
		if errs[i] != nil {
			r.Logger.Error("card skipped", "card", name, "err", errs[i])
			res.Failed = append(res.Failed, CardFailure{Card: name, Err: errs[i]})
			continue
		}
		r.logWarnings(c, docs[i])
		res.Warnings += len(docs[i].Warnings)

		files, err := writeCard(opts, card.Slug(name), docs[i])
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, files...)
		res.Cards++
	}
	res.Duration = time.Since(start)

	r.Logger.Info("generated cards",
		"cards", res.Cards,
		"failed", len(res.Failed),
		"warnings", res.Warnings,
		"duration", res.Duration)

	if len(res.Failed) > 0 {
		return res, errors.Wrap(errors.ErrCodeInvalidTheme, res.Failed[0].Err,
			"%d of %d cards failed", len(res.Failed), len(cards))
	}
	return res, nil
}

func writeCard(opts GenerateOptions, slug string, doc layout.Document) ([]string, error) {
	var files []string
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if opts.Comments {
				svgOpts = append(svgOpts, sink.WithComments())
			}
			data = sink.RenderSVG(doc, svgOpts...)
		case FormatJSON:
			var err error
			if data, err = sink.RenderJSON(doc); err != nil {
				return files, err
			}
		}
		path := filepath.Join(opts.OutDir, slug+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return files, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		files = append(files, path)
	}
	return files, nil
}
